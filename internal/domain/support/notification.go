package support

import (
	"fmt"
	"time"

	"parley/internal/shared/displaytime"
)

// Notification tracks, per (user, ticket) pair, the newest message the user
// has seen and a cached count of unread admin messages.
//
// The cursor only moves forward. The unread count is a cache of
// "admin messages with id > cursor": cheap paths (admin reply, broadcast)
// increment it, detail views recompute it from the message log.
type Notification struct {
	id                uint
	userID            uint
	ticketID          uint
	lastSeenMessageID uint
	unreadAdminCount  int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewNotification creates a zeroed cursor row for a (user, ticket) pair.
func NewNotification(userID, ticketID uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	now := displaytime.NowUTC()
	return &Notification{
		userID:    userID,
		ticketID:  ticketID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructNotification rebuilds a notification from persistence.
func ReconstructNotification(
	id uint,
	userID uint,
	ticketID uint,
	lastSeenMessageID uint,
	unreadAdminCount int,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if unreadAdminCount < 0 {
		return nil, fmt.Errorf("unread count cannot be negative")
	}

	return &Notification{
		id:                id,
		userID:            userID,
		ticketID:          ticketID,
		lastSeenMessageID: lastSeenMessageID,
		unreadAdminCount:  unreadAdminCount,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (n *Notification) ID() uint {
	return n.id
}

func (n *Notification) UserID() uint {
	return n.userID
}

func (n *Notification) TicketID() uint {
	return n.ticketID
}

func (n *Notification) LastSeenMessageID() uint {
	return n.lastSeenMessageID
}

func (n *Notification) UnreadAdminCount() int {
	return n.unreadAdminCount
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) UpdatedAt() time.Time {
	return n.updatedAt
}

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// AdvanceCursor moves the read cursor forward to messageID. Called when the
// user posts: their own message is seen immediately and does not affect the
// unread admin count. Cursor moves backwards are ignored.
func (n *Notification) AdvanceCursor(messageID uint) {
	if messageID <= n.lastSeenMessageID {
		return
	}
	n.lastSeenMessageID = messageID
	n.updatedAt = displaytime.NowUTC()
}

// MarkRead acknowledges everything up to latestMessageID and zeroes the
// unread count.
func (n *Notification) MarkRead(latestMessageID uint) {
	if latestMessageID > n.lastSeenMessageID {
		n.lastSeenMessageID = latestMessageID
	}
	n.unreadAdminCount = 0
	n.updatedAt = displaytime.NowUTC()
}

// IncrementUnread bumps the cached count by one. Used by the cheap admin
// reply and broadcast paths; the cursor is untouched.
func (n *Notification) IncrementUnread() {
	n.unreadAdminCount++
	n.updatedAt = displaytime.NowUTC()
}

// SetUnreadCount overwrites the cache with an authoritative recount.
func (n *Notification) SetUnreadCount(count int) error {
	if count < 0 {
		return fmt.Errorf("unread count cannot be negative")
	}
	n.unreadAdminCount = count
	n.updatedAt = displaytime.NowUTC()
	return nil
}
