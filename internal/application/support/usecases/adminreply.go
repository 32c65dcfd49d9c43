package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type AdminReplyCommand struct {
	AdminID  uint
	TicketID uint
	Text     string
}

type AdminReplyResult struct {
	Message *support.Message
}

// AdminReplyUseCase appends an admin message to an open ticket and bumps the
// owner's unread counter. Replying to a closed ticket is a conflict and
// leaves the counter untouched.
type AdminReplyUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	txRunner   TxRunner
	sanitizer  Sanitizer
	logger     logger.Interface
}

func NewAdminReplyUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	txRunner TxRunner,
	sanitizer Sanitizer,
	logger logger.Interface,
) *AdminReplyUseCase {
	return &AdminReplyUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		txRunner:   txRunner,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

func (uc *AdminReplyUseCase) Execute(ctx context.Context, cmd AdminReplyCommand) (*AdminReplyResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	text := uc.sanitizer.Sanitize(cmd.Text)

	var result AdminReplyResult
	err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		ticket, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return errors.NewNotFoundError("ticket not found")
		}
		if !ticket.IsOpen() {
			return errors.NewConflictError("cannot reply to a closed ticket")
		}

		message, err := support.NewMessage(ticket.ID(), vo.RoleAdmin, cmd.AdminID, text)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.msgRepo.Save(ctx, message); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}

		ticket.Touch()
		if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		if err := incrementUnread(ctx, uc.notifRepo, ticket.UserID(), ticket.ID()); err != nil {
			return err
		}

		result.Message = message
		return nil
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to post admin reply", "error", err, "ticket_id", cmd.TicketID)
		}
		return nil, err
	}

	uc.logger.Infow("admin reply posted",
		"admin_id", cmd.AdminID,
		"ticket_id", cmd.TicketID,
		"message_id", result.Message.ID(),
	)

	return &result, nil
}

// incrementUnread bumps the owner's unread counter, creating the row when the
// owner has never opened the panel. Shared with the broadcast path.
func incrementUnread(ctx context.Context, repo support.NotificationRepository, userID, ticketID uint) error {
	notif, err := repo.GetByUserAndTicket(ctx, userID, ticketID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notif == nil {
		notif, err = support.NewNotification(userID, ticketID)
		if err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		notif.IncrementUnread()
		if err := repo.Save(ctx, notif); err != nil {
			return fmt.Errorf("failed to save notification: %w", err)
		}
		return nil
	}

	notif.IncrementUnread()
	if err := repo.Update(ctx, notif); err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}
