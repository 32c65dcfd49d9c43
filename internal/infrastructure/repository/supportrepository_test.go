package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.TicketModel{},
		&models.MessageModel{},
		&models.NotificationModel{},
		&models.UserModel{},
		&models.TeamModel{},
	)
	require.NoError(t, err)

	return gdb
}

func mustCreateTicket(t *testing.T, repo *TicketRepository, userID uint) *support.Ticket {
	tk, err := support.NewTicket(userID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), tk))
	return tk
}

func mustAppend(t *testing.T, repo *MessageRepository, ticketID uint, role vo.SenderRole, senderID uint, text string) *support.Message {
	m, err := support.NewMessage(ticketID, role, senderID, text)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), m))
	return m
}

func TestTicketRepository_GetOpenByUserID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("no open ticket returns nil", func(t *testing.T) {
		tk, err := repo.GetOpenByUserID(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, tk)
	})

	t.Run("returns latest open ticket", func(t *testing.T) {
		first := mustCreateTicket(t, repo, 7)
		first.Close()
		require.NoError(t, repo.Update(ctx, first))

		second := mustCreateTicket(t, repo, 7)

		found, err := repo.GetOpenByUserID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, second.ID(), found.ID())
		assert.True(t, found.IsOpen())
	})

	t.Run("closed tickets are not returned", func(t *testing.T) {
		tk := mustCreateTicket(t, repo, 8)
		tk.Close()
		require.NoError(t, repo.Update(ctx, tk))

		found, err := repo.GetOpenByUserID(ctx, 8)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := mustCreateTicket(t, repo, 3)
	require.NoError(t, repo.Delete(ctx, tk.ID()))

	_, err := repo.GetByID(ctx, tk.ID())
	assert.EqualError(t, err, "ticket not found")

	assert.EqualError(t, repo.Delete(ctx, tk.ID()), "ticket not found")
}

func TestMessageRepository_ListOrdering(t *testing.T) {
	gdb := setupTestDB(t)
	ticketRepo := NewTicketRepository(gdb)
	msgRepo := NewMessageRepository(gdb)
	ctx := context.Background()

	tk := mustCreateTicket(t, ticketRepo, 5)
	first := mustAppend(t, msgRepo, tk.ID(), vo.RoleUser, 5, "first")
	second := mustAppend(t, msgRepo, tk.ID(), vo.RoleAdmin, 1, "second")
	third := mustAppend(t, msgRepo, tk.ID(), vo.RoleUser, 5, "third")

	messages, err := msgRepo.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, first.ID(), messages[0].ID())
	assert.Equal(t, second.ID(), messages[1].ID())
	assert.Equal(t, third.ID(), messages[2].ID())

	latest, err := msgRepo.Latest(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, third.ID(), latest.ID())
}

func TestMessageRepository_CountSince(t *testing.T) {
	gdb := setupTestDB(t)
	ticketRepo := NewTicketRepository(gdb)
	msgRepo := NewMessageRepository(gdb)
	ctx := context.Background()

	tk := mustCreateTicket(t, ticketRepo, 5)
	mustAppend(t, msgRepo, tk.ID(), vo.RoleUser, 5, "question")
	a1 := mustAppend(t, msgRepo, tk.ID(), vo.RoleAdmin, 1, "answer one")
	a2 := mustAppend(t, msgRepo, tk.ID(), vo.RoleAdmin, 1, "answer two")

	count, err := msgRepo.CountSince(ctx, tk.ID(), vo.RoleAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = msgRepo.CountSince(ctx, tk.ID(), vo.RoleAdmin, a1.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Count is zero once the cursor reaches the newest admin message.
	count, err = msgRepo.CountSince(ctx, tk.ID(), vo.RoleAdmin, a2.ID())
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = msgRepo.CountSince(ctx, tk.ID(), vo.RoleUser, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMessageRepository_HasBroadcast(t *testing.T) {
	gdb := setupTestDB(t)
	ticketRepo := NewTicketRepository(gdb)
	msgRepo := NewMessageRepository(gdb)
	ctx := context.Background()

	tk := mustCreateTicket(t, ticketRepo, 5)

	m, err := support.NewMessage(tk.ID(), vo.RoleAdmin, 1, "[BROADCAST] downtime")
	require.NoError(t, err)
	require.NoError(t, m.TagBroadcast("run-123"))
	require.NoError(t, msgRepo.Save(ctx, m))

	delivered, err := msgRepo.HasBroadcast(ctx, tk.ID(), "run-123")
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered, err = msgRepo.HasBroadcast(ctx, tk.ID(), "run-456")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestNotificationRepository_RoundTrip(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewNotificationRepository(gdb)
	ctx := context.Background()

	missing, err := repo.GetByUserAndTicket(ctx, 4, 9)
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := support.NewNotification(4, 9)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, n))

	n.AdvanceCursor(17)
	n.IncrementUnread()
	require.NoError(t, repo.Update(ctx, n))

	found, err := repo.GetByUserAndTicket(ctx, 4, 9)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint(17), found.LastSeenMessageID())
	assert.Equal(t, 1, found.UnreadAdminCount())
}

func TestCascadeDeleteLeavesNoChildren(t *testing.T) {
	gdb := setupTestDB(t)
	ticketRepo := NewTicketRepository(gdb)
	msgRepo := NewMessageRepository(gdb)
	notifRepo := NewNotificationRepository(gdb)
	ctx := context.Background()

	tk := mustCreateTicket(t, ticketRepo, 6)
	mustAppend(t, msgRepo, tk.ID(), vo.RoleUser, 6, "hello")
	mustAppend(t, msgRepo, tk.ID(), vo.RoleAdmin, 1, "hi")

	n, err := support.NewNotification(6, tk.ID())
	require.NoError(t, err)
	require.NoError(t, notifRepo.Save(ctx, n))

	// Children first, then the ticket.
	require.NoError(t, notifRepo.DeleteByTicketID(ctx, tk.ID()))
	require.NoError(t, msgRepo.DeleteByTicketID(ctx, tk.ID()))
	require.NoError(t, ticketRepo.Delete(ctx, tk.ID()))

	messages, err := msgRepo.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, messages)

	notif, err := notifRepo.GetByUserAndTicket(ctx, 6, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, notif)
}

func TestDirectoryRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewDirectoryRepository(gdb)
	ctx := context.Background()

	teamID := uint(1)
	require.NoError(t, gdb.Create(&models.TeamModel{ID: teamID, Name: "Red Team"}).Error)
	require.NoError(t, gdb.Create(&models.UserModel{ID: 1, Name: "alice", Email: "alice@example.com", TeamID: &teamID}).Error)
	require.NoError(t, gdb.Create(&models.UserModel{ID: 2, Name: "bob", Email: "bob@example.com"}).Error)
	require.NoError(t, gdb.Create(&models.UserModel{ID: 3, Name: "carol", Email: "carol@example.com", TeamID: &teamID}).Error)

	t.Run("get user with team", func(t *testing.T) {
		u, err := repo.GetUser(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, u.TeamID)
		assert.Equal(t, teamID, *u.TeamID)
	})

	t.Run("batch lookup", func(t *testing.T) {
		users, err := repo.GetUsers(ctx, []uint{1, 2, 42})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("paged listing", func(t *testing.T) {
		total, err := repo.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		page, err := repo.ListUsers(ctx, 0, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		page, err = repo.ListUsers(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})

	t.Run("team users", func(t *testing.T) {
		users, err := repo.ListTeamUsers(ctx, teamID)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := repo.GetTeam(ctx, 42)
		assert.EqualError(t, err, "team not found")
	})
}
