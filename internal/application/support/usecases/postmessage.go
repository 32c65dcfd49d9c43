package usecases

import (
	"context"
	"fmt"
	"strings"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type PostMessageCommand struct {
	UserID uint
	Text   string
}

type PostMessageResult struct {
	Ticket        *support.Ticket
	Message       *support.Message
	TicketCreated bool
}

// PostMessageUseCase appends a user message, lazily creating the ticket on
// the first post. The whole operation runs under the caller's per-user lock
// so repeated posts can never create a second open ticket.
type PostMessageUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	txRunner   TxRunner
	locker     Locker
	sanitizer  Sanitizer
	logger     logger.Interface
}

func NewPostMessageUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	txRunner TxRunner,
	locker Locker,
	sanitizer Sanitizer,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		txRunner:   txRunner,
		locker:     locker,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

func userLockKey(userID uint) string {
	return fmt.Sprintf("support:user:%d", userID)
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*PostMessageResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	text := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Text))
	if text == "" {
		return nil, errors.NewValidationError("message text is required")
	}

	uc.locker.Lock(userLockKey(cmd.UserID))
	defer uc.locker.Unlock(userLockKey(cmd.UserID))

	var result PostMessageResult
	err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		ticket, err := uc.ticketRepo.GetOpenByUserID(ctx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get open ticket: %w", err)
		}
		if ticket == nil {
			ticket, err = support.NewTicket(cmd.UserID)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.ticketRepo.Save(ctx, ticket); err != nil {
				return fmt.Errorf("failed to create ticket: %w", err)
			}
			result.TicketCreated = true
		}

		message, err := support.NewMessage(ticket.ID(), vo.RoleUser, cmd.UserID, text)
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

		if err := uc.advanceCursor(ctx, cmd.UserID, ticket.ID(), message.ID()); err != nil {
			return err
		}

		result.Ticket = ticket
		result.Message = message
		return nil
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to post message", "error", err, "user_id", cmd.UserID)
		}
		return nil, err
	}

	uc.logger.Infow("message posted",
		"user_id", cmd.UserID,
		"ticket_id", result.Ticket.ID(),
		"message_id", result.Message.ID(),
		"ticket_created", result.TicketCreated,
	)

	return &result, nil
}

// advanceCursor moves the user's read cursor past their own message. Posting
// does not change the unread admin count.
func (uc *PostMessageUseCase) advanceCursor(ctx context.Context, userID, ticketID, messageID uint) error {
	notif, err := uc.notifRepo.GetByUserAndTicket(ctx, userID, ticketID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notif == nil {
		notif, err = support.NewNotification(userID, ticketID)
		if err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		notif.AdvanceCursor(messageID)
		if err := uc.notifRepo.Save(ctx, notif); err != nil {
			return fmt.Errorf("failed to save notification: %w", err)
		}
		return nil
	}

	notif.AdvanceCursor(messageID)
	if err := uc.notifRepo.Update(ctx, notif); err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}
