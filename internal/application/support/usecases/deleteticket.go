package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
}

// DeleteTicketUseCase removes a ticket with everything hanging off it.
// Children go first (notifications, then messages, then the ticket) inside
// one transaction, so a failure leaves the ticket intact rather than
// orphaning rows.
type DeleteTicketUseCase struct {
	ticketRepo support.TicketRepository
	msgRepo    support.MessageRepository
	notifRepo  support.NotificationRepository
	txRunner   TxRunner
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	txRunner TxRunner,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		msgRepo:    msgRepo,
		notifRepo:  notifRepo,
		txRunner:   txRunner,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
			return errors.NewNotFoundError("ticket not found")
		}

		if err := uc.notifRepo.DeleteByTicketID(ctx, cmd.TicketID); err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := uc.msgRepo.DeleteByTicketID(ctx, cmd.TicketID); err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
			return fmt.Errorf("failed to delete ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to delete ticket", "error", err, "ticket_id", cmd.TicketID)
		}
		return err
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID)
	return nil
}
