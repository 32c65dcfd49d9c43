package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type UnreadCountCommand struct {
	UserID uint
}

type UnreadCountResult struct {
	UnreadAdminCount int
}

// UnreadCountUseCase answers the polling endpoint. It recounts from the
// message log rather than trusting the cached row, so the badge can never
// stick after the cache drifts.
type UnreadCountUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	logger     logger.Interface
}

func NewUnreadCountUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	logger logger.Interface,
) *UnreadCountUseCase {
	return &UnreadCountUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		logger:     logger,
	}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, cmd UnreadCountCommand) (*UnreadCountResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	ticket, err := uc.ticketRepo.GetOpenByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get open ticket", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return &UnreadCountResult{}, nil
	}

	var lastSeen uint
	notif, err := uc.notifRepo.GetByUserAndTicket(ctx, cmd.UserID, ticket.ID())
	if err != nil {
		uc.logger.Errorw("failed to get notification", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if notif != nil {
		lastSeen = notif.LastSeenMessageID()
	}

	count, err := uc.msgRepo.CountSince(ctx, ticket.ID(), vo.RoleAdmin, lastSeen)
	if err != nil {
		uc.logger.Errorw("failed to count unread messages", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}
	unread := int(count)

	// Write the recount back into the cached row so a drifted badge heals on
	// the next poll, not just on the detail view.
	if notif != nil && notif.UnreadAdminCount() != unread {
		if err := notif.SetUnreadCount(unread); err != nil {
			return nil, fmt.Errorf("failed to set unread count: %w", err)
		}
		if err := uc.notifRepo.Update(ctx, notif); err != nil {
			uc.logger.Warnw("failed to persist recomputed unread count", "error", err, "ticket_id", ticket.ID())
			// The recount itself is still correct for this response.
		}
	}

	return &UnreadCountResult{UnreadAdminCount: unread}, nil
}
