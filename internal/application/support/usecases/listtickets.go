package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/directory"
	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/logger"
)

type ListTicketsCommand struct{}

// TicketSummary is one row of the admin ticket list, enriched with directory
// data and the pending-work counter.
type TicketSummary struct {
	Ticket             *support.Ticket
	User               *directory.User // nil when the directory lookup fails
	Team               *directory.Team // nil when the user has no team
	UnreadUserMessages int
}

type ListTicketsResult struct {
	Tickets []*TicketSummary
}

// ListTicketsUseCase builds the admin overview: every ticket ordered by
// latest activity, with owner and team names and the count of user messages
// past the owner's read cursor. Directory lookup failures degrade the row
// instead of failing the list.
type ListTicketsUseCase struct {
	ticketRepo    support.TicketRepository
	msgRepo       support.MessageRepository
	notifRepo     support.NotificationRepository
	directoryRepo directory.Repository
	logger        logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	directoryRepo directory.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo:    ticketRepo,
		msgRepo:       msgRepo,
		notifRepo:     notifRepo,
		directoryRepo: directoryRepo,
		logger:        logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, _ ListTicketsCommand) (*ListTicketsResult, error) {
	tickets, err := uc.ticketRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	userIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		userIDs = append(userIDs, t.UserID())
	}
	users, err := uc.directoryRepo.GetUsers(ctx, userIDs)
	if err != nil {
		uc.logger.Warnw("failed to batch-load users for ticket list", "error", err)
		users = map[uint]*directory.User{}
	}

	teams := map[uint]*directory.Team{}

	summaries := make([]*TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		summary := &TicketSummary{Ticket: t}

		if u, ok := users[t.UserID()]; ok {
			summary.User = u
			if u.TeamID != nil {
				team, ok := teams[*u.TeamID]
				if !ok {
					team, err = uc.directoryRepo.GetTeam(ctx, *u.TeamID)
					if err != nil {
						uc.logger.Warnw("team lookup failed", "error", err, "team_id", *u.TeamID)
						team = nil
					}
					teams[*u.TeamID] = team
				}
				summary.Team = team
			}
		}

		unread, err := uc.countUnreadUserMessages(ctx, t)
		if err != nil {
			return nil, err
		}
		summary.UnreadUserMessages = unread

		summaries = append(summaries, summary)
	}

	return &ListTicketsResult{Tickets: summaries}, nil
}

// countUnreadUserMessages counts user messages past the owner's read cursor.
// Without a notification row every user message counts as pending.
func (uc *ListTicketsUseCase) countUnreadUserMessages(ctx context.Context, t *support.Ticket) (int, error) {
	var lastSeen uint
	notif, err := uc.notifRepo.GetByUserAndTicket(ctx, t.UserID(), t.ID())
	if err != nil {
		uc.logger.Errorw("failed to get notification", "error", err, "ticket_id", t.ID())
		return 0, fmt.Errorf("failed to get notification: %w", err)
	}
	if notif != nil {
		lastSeen = notif.LastSeenMessageID()
	}

	count, err := uc.msgRepo.CountSince(ctx, t.ID(), vo.RoleUser, lastSeen)
	if err != nil {
		uc.logger.Errorw("failed to count user messages", "error", err, "ticket_id", t.ID())
		return 0, fmt.Errorf("failed to count user messages: %w", err)
	}
	return int(count), nil
}
