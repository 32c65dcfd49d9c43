package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/application/support/testutil"
	"parley/internal/domain/directory"
	"parley/internal/shared/errors"
)

type broadcastFixture struct {
	uc            *BroadcastUseCase
	ticketRepo    *testutil.MockTicketRepository
	msgRepo       *testutil.MockMessageRepository
	notifRepo     *testutil.MockNotificationRepository
	directoryRepo *testutil.MockDirectoryRepository
	txRunner      *testutil.MockTxRunner
}

func newBroadcastFixture(batchSize int) *broadcastFixture {
	f := &broadcastFixture{
		ticketRepo:    testutil.NewMockTicketRepository(),
		msgRepo:       testutil.NewMockMessageRepository(),
		notifRepo:     testutil.NewMockNotificationRepository(),
		directoryRepo: testutil.NewMockDirectoryRepository(),
		txRunner:      testutil.NewMockTxRunner(),
	}
	f.uc = NewBroadcastUseCase(
		f.ticketRepo,
		f.msgRepo,
		f.notifRepo,
		f.directoryRepo,
		f.txRunner,
		testutil.NewMockLocker(),
		testutil.NewMockSanitizer(),
		testutil.NewMockIDGenerator(),
		batchSize,
		testutil.NewMockLogger(),
	)
	return f
}

func (f *broadcastFixture) seedUsers(n int) {
	for i := 1; i <= n; i++ {
		f.directoryRepo.AddUser(&directory.User{
			ID:    uint(i),
			Name:  fmt.Sprintf("user%d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		})
	}
}

func TestBroadcast_AllUsersFanOut(t *testing.T) {
	f := newBroadcastFixture(2)
	f.seedUsers(5)

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "maintenance at noon",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.TicketsCreated)
	assert.Equal(t, 5, result.MessagesSent)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 5, f.ticketRepo.Count())
	assert.Equal(t, 5, f.msgRepo.Count())
	assert.Equal(t, 5, f.notifRepo.Count())

	// Each recipient sees the banner prefix and one unread message.
	messages, err := f.msgRepo.ListByTicketID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "[BROADCAST] maintenance at noon", messages[0].Text())
	assert.Equal(t, result.BroadcastID, messages[0].BroadcastID())

	notif, err := f.notifRepo.GetByUserAndTicket(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, 1, notif.UnreadAdminCount())
}

func TestBroadcast_ReusesOpenTickets(t *testing.T) {
	f := newBroadcastFixture(100)
	f.seedUsers(3)
	existing := seedOpenTicket(t, f.ticketRepo, 2)

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TicketsCreated)
	assert.Equal(t, 3, result.MessagesSent)

	messages, err := f.msgRepo.ListByTicketID(context.Background(), existing.ID())
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestBroadcast_RerunIsIdempotent(t *testing.T) {
	f := newBroadcastFixture(100)
	f.seedUsers(4)

	first, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "hello",
	})
	require.NoError(t, err)
	require.Equal(t, 4, first.MessagesSent)

	// Retrying the same run delivers nothing new.
	second, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID:     1,
		Target:      "all",
		Text:        "hello",
		BroadcastID: first.BroadcastID,
	})
	require.NoError(t, err)
	assert.Zero(t, second.MessagesSent)
	assert.Zero(t, second.TicketsCreated)
	assert.Equal(t, 4, f.msgRepo.Count())
}

func TestBroadcast_OpenTicketsTarget(t *testing.T) {
	f := newBroadcastFixture(100)
	open := seedOpenTicket(t, f.ticketRepo, 2)
	closed := seedOpenTicket(t, f.ticketRepo, 3)
	closed.Close()

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "open_tickets",
		Text:    "heads up",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.MessagesSent)
	assert.Zero(t, result.TicketsCreated)

	messages, err := f.msgRepo.ListByTicketID(context.Background(), open.ID())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "[BROADCAST] heads up", messages[0].Text())

	messages, err = f.msgRepo.ListByTicketID(context.Background(), closed.ID())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestBroadcast_TeamTargetUsesTeamBanner(t *testing.T) {
	f := newBroadcastFixture(100)
	teamID := uint(9)
	f.directoryRepo.AddTeam(&directory.Team{ID: teamID, Name: "Blue Hats"})
	f.directoryRepo.AddUser(&directory.User{ID: 1, Name: "alice", TeamID: &teamID})
	f.directoryRepo.AddUser(&directory.User{ID: 2, Name: "bob"})

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "specific_team",
		TeamID:  teamID,
		Text:    "good luck",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.MessagesSent)

	messages, err := f.msgRepo.ListByTicketID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "[BROADCAST to Blue Hats] good luck", messages[0].Text())
}

func TestBroadcast_TeamTargetValidation(t *testing.T) {
	f := newBroadcastFixture(100)

	_, err := f.uc.Execute(context.Background(), BroadcastCommand{AdminID: 1, Target: "specific_team", Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = f.uc.Execute(context.Background(), BroadcastCommand{AdminID: 1, Target: "specific_team", TeamID: 404, Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestBroadcast_InvalidTargetRejected(t *testing.T) {
	f := newBroadcastFixture(100)

	_, err := f.uc.Execute(context.Background(), BroadcastCommand{AdminID: 1, Target: "everyone", Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestBroadcast_EmptyTextRejected(t *testing.T) {
	f := newBroadcastFixture(100)

	_, err := f.uc.Execute(context.Background(), BroadcastCommand{AdminID: 1, Target: "all", Text: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestBroadcast_SingleRecipientFailureTolerated(t *testing.T) {
	f := newBroadcastFixture(100)
	f.seedUsers(5)
	f.ticketRepo.FailSaveForUser(3)

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "hello",
	})
	require.NoError(t, err)

	// The failing recipient is skipped; the other four still receive.
	assert.Equal(t, 4, result.MessagesSent)
	assert.Equal(t, 4, result.TicketsCreated)
	assert.Equal(t, 4, f.msgRepo.Count())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "user 3")
}

func TestBroadcast_CommitFailureDiscardsBatchCounts(t *testing.T) {
	f := newBroadcastFixture(2)
	f.seedUsers(4)
	f.txRunner.FailCommit(1, fmt.Errorf("commit failed"))

	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "hello",
	})
	require.NoError(t, err)

	// The first batch rolled back at commit, so only the second batch's two
	// deliveries are counted.
	assert.Equal(t, 2, result.MessagesSent)
	assert.Equal(t, 2, result.TicketsCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "batch 1")
}

func TestBroadcast_BatchFailureDoesNotAbortRun(t *testing.T) {
	f := newBroadcastFixture(2)
	f.seedUsers(4)

	f.directoryRepo.SetListError(fmt.Errorf("page load failed"))
	result, err := f.uc.Execute(context.Background(), BroadcastCommand{
		AdminID: 1,
		Target:  "all",
		Text:    "hello",
	})
	require.NoError(t, err)

	// Both pages failed to list, so the run finishes with errors recorded
	// and nothing delivered. Partial success stays success.
	assert.Zero(t, result.MessagesSent)
	require.Len(t, result.Errors, 2)
	for _, msg := range result.Errors {
		assert.True(t, strings.Contains(msg, "failed"))
	}
}
