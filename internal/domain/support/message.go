package support

import (
	"fmt"
	"strings"
	"time"

	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/displaytime"
)

const maxMessageLength = 5000

// Message is one entry in a ticket's append-only conversation log.
// Messages are immutable once created and ordered by id.
type Message struct {
	id          uint
	ticketID    uint
	senderRole  vo.SenderRole
	senderID    uint
	text        string
	broadcastID string
	createdAt   time.Time
}

// NewMessage creates a message. Text must be non-empty after trimming.
func NewMessage(ticketID uint, senderRole vo.SenderRole, senderID uint, text string) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !senderRole.IsValid() {
		return nil, fmt.Errorf("invalid sender role: %s", senderRole)
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}

	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if len(text) > maxMessageLength {
		return nil, fmt.Errorf("text exceeds maximum length of %d characters", maxMessageLength)
	}

	return &Message{
		ticketID:   ticketID,
		senderRole: senderRole,
		senderID:   senderID,
		text:       text,
		createdAt:  displaytime.NowUTC(),
	}, nil
}

// ReconstructMessage rebuilds a message from persistence.
func ReconstructMessage(
	id uint,
	ticketID uint,
	senderRole vo.SenderRole,
	senderID uint,
	text string,
	broadcastID string,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !senderRole.IsValid() {
		return nil, fmt.Errorf("invalid sender role: %s", senderRole)
	}

	return &Message{
		id:          id,
		ticketID:    ticketID,
		senderRole:  senderRole,
		senderID:    senderID,
		text:        text,
		broadcastID: broadcastID,
		createdAt:   createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) SenderRole() vo.SenderRole {
	return m.senderRole
}

func (m *Message) SenderID() uint {
	return m.senderID
}

func (m *Message) Text() string {
	return m.text
}

// BroadcastID is the run identifier for broadcast-delivered messages,
// empty for ordinary messages. Re-delivery with the same run id is skipped.
func (m *Message) BroadcastID() string {
	return m.broadcastID
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// TagBroadcast stamps the message with its broadcast run identifier.
func (m *Message) TagBroadcast(broadcastID string) error {
	if m.broadcastID != "" {
		return fmt.Errorf("broadcast ID is already set")
	}
	if broadcastID == "" {
		return fmt.Errorf("broadcast ID cannot be empty")
	}
	m.broadcastID = broadcastID
	return nil
}
