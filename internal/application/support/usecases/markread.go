package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type MarkReadCommand struct {
	UserID uint
}

type MarkReadResult struct {
	TicketID          uint
	LastSeenMessageID uint
}

// MarkReadUseCase resets the caller's unread counter and moves the read
// cursor to the newest message of their open ticket.
type MarkReadUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	logger     logger.Interface
}

func NewMarkReadUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	logger logger.Interface,
) *MarkReadUseCase {
	return &MarkReadUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		logger:     logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	ticket, err := uc.ticketRepo.GetOpenByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get open ticket", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		// Nothing to mark. Matches the read path's empty state.
		return &MarkReadResult{}, nil
	}

	var latestID uint
	latest, err := uc.msgRepo.Latest(ctx, ticket.ID())
	if err != nil {
		uc.logger.Errorw("failed to get latest message", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to get latest message: %w", err)
	}
	if latest != nil {
		latestID = latest.ID()
	}

	notif, err := uc.notifRepo.GetByUserAndTicket(ctx, cmd.UserID, ticket.ID())
	if err != nil {
		uc.logger.Errorw("failed to get notification", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if notif == nil {
		notif, err = support.NewNotification(cmd.UserID, ticket.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to create notification: %w", err)
		}
		notif.MarkRead(latestID)
		if err := uc.notifRepo.Save(ctx, notif); err != nil {
			return nil, fmt.Errorf("failed to save notification: %w", err)
		}
	} else {
		notif.MarkRead(latestID)
		if err := uc.notifRepo.Update(ctx, notif); err != nil {
			return nil, fmt.Errorf("failed to update notification: %w", err)
		}
	}

	return &MarkReadResult{
		TicketID:          ticket.ID(),
		LastSeenMessageID: notif.LastSeenMessageID(),
	}, nil
}
