package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen   TicketStatus = "open"
	StatusClosed TicketStatus = "closed"
	// StatusPending is accepted by the legacy status endpoint for backward
	// compatibility. No other code path sets or reads it.
	StatusPending TicketStatus = "pending"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:    true,
	StatusClosed:  true,
	StatusPending: true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
