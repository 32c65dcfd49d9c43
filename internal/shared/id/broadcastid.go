// Package id generates the identifiers that tag broadcast runs.
package id

import "github.com/google/uuid"

// NewBroadcastID mints the identifier shared by every message of one
// broadcast run.
func NewBroadcastID() string {
	return uuid.NewString()
}

// UUIDGenerator adapts NewBroadcastID to the application layer's generator
// interface.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return NewBroadcastID()
}
