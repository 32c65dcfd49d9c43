package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/infrastructure/persistence/mappers"
	"parley/internal/infrastructure/persistence/models"
	"parley/internal/shared/db"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.SupportMapper
}

func NewMessageRepository(gdb *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     gdb,
		mapper: mappers.NewSupportMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, m *support.Message) error {
	model := r.mapper.MessageToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*support.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var messageModels []models.MessageModel
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*support.Message, len(messageModels))
	for i, model := range messageModels {
		m, err := r.mapper.MessageToDomain(&model)
		if err != nil {
			return nil, err
		}
		messages[i] = m
	}

	return messages, nil
}

// Latest returns the newest message in the ticket, or (nil, nil) when the
// ticket has no messages yet.
func (r *MessageRepository) Latest(ctx context.Context, ticketID uint) (*support.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("ticket_id = ?", ticketID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest message: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) CountSince(ctx context.Context, ticketID uint, role vo.SenderRole, afterID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.MessageModel{}).
		Where("ticket_id = ? AND sender_role = ? AND id > ?", ticketID, role.String(), afterID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}

func (r *MessageRepository) HasBroadcast(ctx context.Context, ticketID uint, broadcastID string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.MessageModel{}).
		Where("ticket_id = ? AND broadcast_id = ?", ticketID, broadcastID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check broadcast delivery: %w", err)
	}

	return count > 0, nil
}

func (r *MessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	return nil
}
