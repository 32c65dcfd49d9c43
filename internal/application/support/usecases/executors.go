package usecases

import "context"

// Executor interfaces let the HTTP layer depend on behavior instead of the
// concrete use case structs.

type GetTicketExecutor interface {
	Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error)
}

type PostMessageExecutor interface {
	Execute(ctx context.Context, cmd PostMessageCommand) (*PostMessageResult, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error)
}

type UnreadCountExecutor interface {
	Execute(ctx context.Context, cmd UnreadCountCommand) (*UnreadCountResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error)
}

type GetAdminTicketExecutor interface {
	Execute(ctx context.Context, cmd GetAdminTicketCommand) (*GetAdminTicketResult, error)
}

type AdminReplyExecutor interface {
	Execute(ctx context.Context, cmd AdminReplyCommand) (*AdminReplyResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type BroadcastExecutor interface {
	Execute(ctx context.Context, cmd BroadcastCommand) (*BroadcastResult, error)
}
