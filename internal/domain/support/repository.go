package support

import (
	"context"

	vo "parley/internal/domain/support/valueobjects"
)

// TicketRepository owns ticket lifecycle persistence. GetOpenByUserID returns
// (nil, nil) when the user has no open ticket so callers can branch on the
// lazy-creation rule without error plumbing.
type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetOpenByUserID(ctx context.Context, userID uint) (*Ticket, error)
	ListOpen(ctx context.Context) ([]*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	// Delete removes the ticket row only. Cascading children is the
	// delete use case's job (children first).
	Delete(ctx context.Context, ticketID uint) error
}

// MessageRepository is the append-only ordered message log.
type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
	Latest(ctx context.Context, ticketID uint) (*Message, error)
	// CountSince counts messages of the given role with id strictly
	// greater than afterID. Building block for unread counts.
	CountSince(ctx context.Context, ticketID uint, role vo.SenderRole, afterID uint) (int64, error)
	// HasBroadcast reports whether the ticket already holds a message from
	// the given broadcast run. Makes re-delivery idempotent.
	HasBroadcast(ctx context.Context, ticketID uint, broadcastID string) (bool, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

// NotificationRepository stores the per-(user, ticket) read cursor rows.
type NotificationRepository interface {
	Save(ctx context.Context, notification *Notification) error
	Update(ctx context.Context, notification *Notification) error
	// GetByUserAndTicket returns (nil, nil) when no row exists.
	GetByUserAndTicket(ctx context.Context, userID, ticketID uint) (*Notification, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}
