package usecases

import "context"

// Locker serializes work per key. The ticket use cases hold a per-user lock
// around the open-ticket check-then-act so two concurrent posts cannot both
// observe "no open ticket" and create one each.
type Locker interface {
	Lock(key string)
	Unlock(key string)
}

// Sanitizer strips markup from user-supplied message text before it is
// persisted.
type Sanitizer interface {
	Sanitize(text string) string
}

// TxRunner runs a function inside a database transaction. Satisfied by
// db.TransactionManager.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BroadcastIDGenerator mints the identifier shared by every message of one
// broadcast run.
type BroadcastIDGenerator interface {
	NewID() string
}
