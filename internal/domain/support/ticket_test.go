package support

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "parley/internal/domain/support/valueobjects"
)

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket(42)
	require.NoError(t, err)

	assert.Equal(t, uint(42), tk.UserID())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.True(t, tk.IsOpen())
	assert.False(t, tk.CreatedAt().IsZero())
	assert.Equal(t, tk.CreatedAt(), tk.UpdatedAt())
}

func TestNewTicket_RequiresUser(t *testing.T) {
	_, err := NewTicket(0)
	assert.EqualError(t, err, "user ID is required")
}

func TestReconstructTicket(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		id      uint
		userID  uint
		status  vo.TicketStatus
		wantErr string
	}{
		{name: "valid open ticket", id: 1, userID: 2, status: vo.StatusOpen},
		{name: "valid closed ticket", id: 1, userID: 2, status: vo.StatusClosed},
		{name: "legacy pending status", id: 1, userID: 2, status: vo.StatusPending},
		{name: "zero id", id: 0, userID: 2, status: vo.StatusOpen, wantErr: "ticket ID cannot be zero"},
		{name: "zero user", id: 1, userID: 0, status: vo.StatusOpen, wantErr: "user ID is required"},
		{name: "invalid status", id: 1, userID: 2, status: "resolved", wantErr: "invalid status: resolved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := ReconstructTicket(tt.id, tt.userID, tt.status, now, now)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, tk.ID())
			assert.Equal(t, tt.status, tk.Status())
		})
	}
}

func TestTicket_Close(t *testing.T) {
	tk, err := NewTicket(7)
	require.NoError(t, err)

	before := tk.UpdatedAt()
	tk.Close()

	assert.True(t, tk.Status().IsClosed())
	assert.False(t, tk.UpdatedAt().Before(before))

	// Closing twice is a no-op.
	updated := tk.UpdatedAt()
	tk.Close()
	assert.Equal(t, updated, tk.UpdatedAt())
}

func TestTicket_ChangeStatus(t *testing.T) {
	tk, err := NewTicket(7)
	require.NoError(t, err)

	require.NoError(t, tk.ChangeStatus(vo.StatusPending))
	assert.Equal(t, vo.StatusPending, tk.Status())

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.True(t, tk.IsOpen())

	err = tk.ChangeStatus("archived")
	assert.EqualError(t, err, "invalid status: archived")
	assert.True(t, tk.IsOpen())
}

func TestTicket_SetID(t *testing.T) {
	tk, err := NewTicket(7)
	require.NoError(t, err)

	require.NoError(t, tk.SetID(11))
	assert.Equal(t, uint(11), tk.ID())

	assert.EqualError(t, tk.SetID(12), "ticket ID is already set")
	assert.Equal(t, uint(11), tk.ID())
}
