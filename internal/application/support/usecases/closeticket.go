package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
}

type CloseTicketResult struct {
	Ticket *support.Ticket
}

// CloseTicketUseCase marks a ticket closed. Closing an already-closed ticket
// is a no-op that still succeeds.
type CloseTicketUseCase struct {
	ticketRepo support.TicketRepository
	logger     logger.Interface
}

func NewCloseTicketUseCase(ticketRepo support.TicketRepository, logger logger.Interface) *CloseTicketUseCase {
	return &CloseTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticket, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	ticket.Close()
	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		uc.logger.Errorw("failed to close ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, fmt.Errorf("failed to close ticket: %w", err)
	}

	uc.logger.Infow("ticket closed", "ticket_id", cmd.TicketID)
	return &CloseTicketResult{Ticket: ticket}, nil
}
