package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/directory"
	"parley/internal/domain/support"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

type GetAdminTicketCommand struct {
	TicketID uint
}

type GetAdminTicketResult struct {
	Ticket   *support.Ticket
	Messages []*support.Message
	User     *directory.User // ticket owner; nil when the lookup fails
	Team     *directory.Team
	// SenderNames maps user-role sender IDs to display names for the
	// transcript view.
	SenderNames map[uint]string
}

// GetAdminTicketUseCase loads one ticket's full transcript for the admin
// detail view, with directory enrichment for the owner and every sender.
type GetAdminTicketUseCase struct {
	ticketRepo    support.TicketRepository
	msgRepo       support.MessageRepository
	directoryRepo directory.Repository
	logger        logger.Interface
}

func NewGetAdminTicketUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	directoryRepo directory.Repository,
	logger logger.Interface,
) *GetAdminTicketUseCase {
	return &GetAdminTicketUseCase{
		ticketRepo:    ticketRepo,
		msgRepo:       msgRepo,
		directoryRepo: directoryRepo,
		logger:        logger,
	}
}

func (uc *GetAdminTicketUseCase) Execute(ctx context.Context, cmd GetAdminTicketCommand) (*GetAdminTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticket, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	messages, err := uc.msgRepo.ListByTicketID(ctx, ticket.ID())
	if err != nil {
		uc.logger.Errorw("failed to list messages", "error", err, "ticket_id", ticket.ID())
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	result := &GetAdminTicketResult{
		Ticket:      ticket,
		Messages:    messages,
		SenderNames: map[uint]string{},
	}

	senderIDs := make([]uint, 0, len(messages)+1)
	senderIDs = append(senderIDs, ticket.UserID())
	for _, m := range messages {
		if m.SenderRole().IsUser() {
			senderIDs = append(senderIDs, m.SenderID())
		}
	}

	users, err := uc.directoryRepo.GetUsers(ctx, senderIDs)
	if err != nil {
		uc.logger.Warnw("failed to load senders for ticket detail", "error", err, "ticket_id", ticket.ID())
		return result, nil
	}

	for id, u := range users {
		result.SenderNames[id] = u.Name
	}

	if owner, ok := users[ticket.UserID()]; ok {
		result.User = owner
		if owner.TeamID != nil {
			team, err := uc.directoryRepo.GetTeam(ctx, *owner.TeamID)
			if err != nil {
				uc.logger.Warnw("team lookup failed", "error", err, "team_id", *owner.TeamID)
			} else {
				result.Team = team
			}
		}
	}

	return result, nil
}
