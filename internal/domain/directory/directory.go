// Package directory gives read-only access to the host platform's user and
// team records. The support desk never writes these tables.
package directory

import "context"

// User is a directory record, including the optional team membership used
// for admin-view enrichment and team-targeted broadcasts.
type User struct {
	ID     uint
	Name   string
	Email  string
	TeamID *uint
}

// Team is a directory record.
type Team struct {
	ID   uint
	Name string
}

// Repository is the read-only lookup over the platform directory.
// ListUsers pages with offset/limit so broadcast runs can scan the whole
// directory in bounded batches.
type Repository interface {
	GetUser(ctx context.Context, userID uint) (*User, error)
	GetUsers(ctx context.Context, userIDs []uint) (map[uint]*User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*User, error)
	CountUsers(ctx context.Context) (int64, error)
	GetTeam(ctx context.Context, teamID uint) (*Team, error)
	ListTeamUsers(ctx context.Context, teamID uint) ([]*User, error)
}
