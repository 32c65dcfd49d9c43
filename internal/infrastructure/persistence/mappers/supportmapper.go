package mappers

import (
	"time"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/infrastructure/persistence/models"
)

// SupportMapper handles the conversion between support domain entities and
// persistence models.
type SupportMapper interface {
	TicketToModel(t *support.Ticket) *models.TicketModel
	TicketToDomain(model *models.TicketModel) (*support.Ticket, error)
	MessageToModel(m *support.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*support.Message, error)
	NotificationToModel(n *support.Notification) *models.NotificationModel
	NotificationToDomain(model *models.NotificationModel) (*support.Notification, error)
}

type supportMapper struct{}

// NewSupportMapper creates a new SupportMapper.
func NewSupportMapper() SupportMapper {
	return &supportMapper{}
}

func (m *supportMapper) TicketToModel(t *support.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt().UnixMilli(),
		UpdatedAt: t.UpdatedAt().UnixMilli(),
	}
}

func (m *supportMapper) TicketToDomain(model *models.TicketModel) (*support.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return support.ReconstructTicket(
		model.ID,
		model.UserID,
		status,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *supportMapper) MessageToModel(msg *support.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:          msg.ID(),
		TicketID:    msg.TicketID(),
		SenderRole:  msg.SenderRole().String(),
		SenderID:    msg.SenderID(),
		Text:        msg.Text(),
		BroadcastID: msg.BroadcastID(),
		CreatedAt:   msg.CreatedAt().UnixMilli(),
	}
}

func (m *supportMapper) MessageToDomain(model *models.MessageModel) (*support.Message, error) {
	role, err := vo.NewSenderRole(model.SenderRole)
	if err != nil {
		return nil, err
	}

	return support.ReconstructMessage(
		model.ID,
		model.TicketID,
		role,
		model.SenderID,
		model.Text,
		model.BroadcastID,
		millisToTime(model.CreatedAt),
	)
}

func (m *supportMapper) NotificationToModel(n *support.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:                n.ID(),
		UserID:            n.UserID(),
		TicketID:          n.TicketID(),
		LastSeenMessageID: n.LastSeenMessageID(),
		UnreadAdminCount:  n.UnreadAdminCount(),
		CreatedAt:         n.CreatedAt().UnixMilli(),
		UpdatedAt:         n.UpdatedAt().UnixMilli(),
	}
}

func (m *supportMapper) NotificationToDomain(model *models.NotificationModel) (*support.Notification, error) {
	return support.ReconstructNotification(
		model.ID,
		model.UserID,
		model.TicketID,
		model.LastSeenMessageID,
		model.UnreadAdminCount,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
