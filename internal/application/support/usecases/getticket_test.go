package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/application/support/testutil"
	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
)

func TestGetTicket_EmptyStateWithoutTicket(t *testing.T) {
	uc := NewGetTicketUseCase(
		testutil.NewMockTicketRepository(),
		testutil.NewMockMessageRepository(),
		testutil.NewMockNotificationRepository(),
		testutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), GetTicketCommand{UserID: 7})
	require.NoError(t, err)
	assert.Nil(t, result.Ticket)
	assert.Empty(t, result.Messages)
	assert.Zero(t, result.UnreadAdminCount)
}

func TestGetTicket_ReturnsTranscriptAndRecount(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	msgRepo := testutil.NewMockMessageRepository()
	notifRepo := testutil.NewMockNotificationRepository()
	uc := NewGetTicketUseCase(ticketRepo, msgRepo, notifRepo, testutil.NewMockLogger())

	ticket := seedOpenTicket(t, ticketRepo, 7)
	userMsg, err := support.NewMessage(ticket.ID(), vo.RoleUser, 7, "question")
	require.NoError(t, err)
	msgRepo.AddMessage(userMsg)
	adminMsg, err := support.NewMessage(ticket.ID(), vo.RoleAdmin, 1, "answer")
	require.NoError(t, err)
	msgRepo.AddMessage(adminMsg)

	result, err := uc.Execute(context.Background(), GetTicketCommand{UserID: 7})
	require.NoError(t, err)
	require.NotNil(t, result.Ticket)
	assert.Len(t, result.Messages, 2)
	assert.Equal(t, 1, result.UnreadAdminCount)
}

func TestGetTicket_InitializesMissingNotificationRow(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	msgRepo := testutil.NewMockMessageRepository()
	notifRepo := testutil.NewMockNotificationRepository()
	uc := NewGetTicketUseCase(ticketRepo, msgRepo, notifRepo, testutil.NewMockLogger())

	ticket := seedOpenTicket(t, ticketRepo, 7)
	adminMsg, err := support.NewMessage(ticket.ID(), vo.RoleAdmin, 1, "answer")
	require.NoError(t, err)
	msgRepo.AddMessage(adminMsg)

	result, err := uc.Execute(context.Background(), GetTicketCommand{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UnreadAdminCount)

	// The detail read created the row with the recount already in it.
	stored, err := notifRepo.GetByUserAndTicket(context.Background(), 7, ticket.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.UnreadAdminCount())
}

func TestGetTicket_HealsDriftedCache(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	msgRepo := testutil.NewMockMessageRepository()
	notifRepo := testutil.NewMockNotificationRepository()
	uc := NewGetTicketUseCase(ticketRepo, msgRepo, notifRepo, testutil.NewMockLogger())

	ticket := seedOpenTicket(t, ticketRepo, 7)
	adminMsg, err := support.NewMessage(ticket.ID(), vo.RoleAdmin, 1, "answer")
	require.NoError(t, err)
	msgRepo.AddMessage(adminMsg)

	// Cached row claims five unread. The log says one.
	notif, err := support.NewNotification(7, ticket.ID())
	require.NoError(t, err)
	require.NoError(t, notif.SetUnreadCount(5))
	notifRepo.AddNotification(notif)

	result, err := uc.Execute(context.Background(), GetTicketCommand{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UnreadAdminCount)

	stored, err := notifRepo.GetByUserAndTicket(context.Background(), 7, ticket.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UnreadAdminCount())
}
