package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID uint
	Status   string
}

type ChangeStatusResult struct {
	Ticket *support.Ticket
}

// ChangeStatusUseCase backs the legacy status endpoint, which accepts the
// full open|closed|pending set. New clients should use close instead.
type ChangeStatusUseCase struct {
	ticketRepo support.TicketRepository
	logger     logger.Interface
}

func NewChangeStatusUseCase(ticketRepo support.TicketRepository, logger logger.Interface) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	status := vo.TicketStatus(cmd.Status)
	if !status.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid status: %s", cmd.Status))
	}

	ticket, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if err := ticket.ChangeStatus(status); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		uc.logger.Errorw("failed to update ticket status", "error", err, "ticket_id", cmd.TicketID)
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Infow("ticket status changed", "ticket_id", cmd.TicketID, "status", status)
	return &ChangeStatusResult{Ticket: ticket}, nil
}
