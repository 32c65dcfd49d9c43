package support

import (
	"fmt"
	"time"

	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/displaytime"
)

// Ticket is the conversation a user holds with support. A user has at most
// one open ticket at any time; callers serialize creation per user.
type Ticket struct {
	id        uint
	userID    uint
	status    vo.TicketStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewTicket creates an open ticket for the given user.
func NewTicket(userID uint) (*Ticket, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := displaytime.NowUTC()
	return &Ticket{
		userID:    userID,
		status:    vo.StatusOpen,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence.
func ReconstructTicket(
	id uint,
	userID uint,
	status vo.TicketStatus,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:        id,
		userID:    userID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) UserID() uint {
	return t.userID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) IsOpen() bool {
	return t.status.IsOpen()
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// Close marks the ticket closed. Closing an already closed ticket is a no-op.
// The exposed API has no reopen; a new ticket is created instead.
func (t *Ticket) Close() {
	if t.status.IsClosed() {
		return
	}
	t.status = vo.StatusClosed
	t.updatedAt = displaytime.NowUTC()
}

// ChangeStatus sets an arbitrary valid status. Only the legacy status
// endpoint uses this; it accepts "pending" even though nothing reads it.
func (t *Ticket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	t.status = status
	t.updatedAt = displaytime.NowUTC()
	return nil
}

// Touch refreshes the activity timestamp, called on every message append.
func (t *Ticket) Touch() {
	t.updatedAt = displaytime.NowUTC()
}
