package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/logger"
)

type GetTicketCommand struct {
	UserID uint
}

type GetTicketResult struct {
	Ticket           *support.Ticket // nil when the user has no open ticket
	Messages         []*support.Message
	UnreadAdminCount int
}

// GetTicketUseCase loads the caller's open ticket with its full message log.
// The detail view is the authoritative read path: it recounts unread admin
// messages from the log and writes the recount back into the cached
// notification row, healing any drift left by the cheap increment paths.
type GetTicketUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	ticket, err := uc.ticketRepo.GetOpenByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get open ticket", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		// Tickets are created lazily on first message, so "no ticket" is a
		// normal empty state, not an error.
		return &GetTicketResult{}, nil
	}

	messages, err := uc.msgRepo.ListByTicketID(ctx, ticket.ID())
	if err != nil {
		uc.logger.Errorw("failed to list messages", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	unread, err := uc.recomputeUnread(ctx, cmd.UserID, ticket.ID())
	if err != nil {
		return nil, err
	}

	return &GetTicketResult{
		Ticket:           ticket,
		Messages:         messages,
		UnreadAdminCount: unread,
	}, nil
}

func (uc *GetTicketUseCase) recomputeUnread(ctx context.Context, userID, ticketID uint) (int, error) {
	notif, err := uc.notifRepo.GetByUserAndTicket(ctx, userID, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to get notification row", "error", err, "user_id", userID, "ticket_id", ticketID)
		return 0, fmt.Errorf("failed to get notification: %w", err)
	}

	var lastSeen uint
	if notif != nil {
		lastSeen = notif.LastSeenMessageID()
	}

	count, err := uc.msgRepo.CountSince(ctx, ticketID, vo.RoleAdmin, lastSeen)
	if err != nil {
		uc.logger.Errorw("failed to count unread admin messages", "error", err, "ticket_id", ticketID)
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	unread := int(count)

	// The detail view is also where a missing row gets initialized, so the
	// cheap increment and mark-read paths always find one afterwards.
	if notif == nil {
		notif, err = support.NewNotification(userID, ticketID)
		if err != nil {
			return 0, fmt.Errorf("failed to create notification: %w", err)
		}
		if err := notif.SetUnreadCount(unread); err != nil {
			return 0, fmt.Errorf("failed to set unread count: %w", err)
		}
		if err := uc.notifRepo.Save(ctx, notif); err != nil {
			uc.logger.Warnw("failed to save notification row", "error", err, "ticket_id", ticketID)
			// The recount itself is still correct for this response.
		}
		return unread, nil
	}

	if notif.UnreadAdminCount() != unread {
		uc.logger.Debugw("healing unread count drift",
			"user_id", userID,
			"ticket_id", ticketID,
			"cached", notif.UnreadAdminCount(),
			"recomputed", unread,
		)
		if err := notif.SetUnreadCount(unread); err != nil {
			return 0, fmt.Errorf("failed to set unread count: %w", err)
		}
		if err := uc.notifRepo.Update(ctx, notif); err != nil {
			uc.logger.Warnw("failed to persist recomputed unread count", "error", err, "ticket_id", ticketID)
			// The recount itself is still correct for this response.
		}
	}

	return unread, nil
}
