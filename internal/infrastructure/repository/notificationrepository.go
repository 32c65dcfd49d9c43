package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parley/internal/domain/support"
	"parley/internal/infrastructure/persistence/mappers"
	"parley/internal/infrastructure/persistence/models"
	"parley/internal/shared/db"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.SupportMapper
}

func NewNotificationRepository(gdb *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     gdb,
		mapper: mappers.NewSupportMapper(),
	}
}

func (r *NotificationRepository) Save(ctx context.Context, n *support.Notification) error {
	model := r.mapper.NotificationToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return n.SetID(model.ID)
}

func (r *NotificationRepository) Update(ctx context.Context, n *support.Notification) error {
	model := r.mapper.NotificationToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.NotificationModel{}).
		Where("id = ?", model.ID).
		Select("last_seen_message_id", "unread_admin_count", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update notification: %w", result.Error)
	}

	return nil
}

// GetByUserAndTicket returns (nil, nil) when the pair has no row yet;
// callers lazily create one through the tracker's get-or-init path.
func (r *NotificationRepository) GetByUserAndTicket(ctx context.Context, userID, ticketID uint) (*support.Notification, error) {
	var model models.NotificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("user_id = ? AND ticket_id = ?", userID, ticketID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	return r.mapper.NotificationToDomain(&model)
}

func (r *NotificationRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Delete(&models.NotificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}
