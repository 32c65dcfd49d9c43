// Package displaytime converts stored UTC timestamps to the client-facing
// display timezone. All storage and queries use UTC; the fixed-offset
// display zone is applied only at the response-serialization boundary.
package displaytime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default display timezone (UTC+8).
	DefaultTimezone = "Asia/Singapore"
)

var (
	displayLoc  *time.Location
	displayOnce sync.Once
	initErr     error
)

// Init initializes the display timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Singapore.
func Init(tz string) error {
	displayOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		displayLoc, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the display timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize display timezone %q: %v", tz, err))
	}
}

// Location returns the display timezone location, auto-initializing with the
// default when Init was never called.
func Location() *time.Location {
	if displayLoc == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("displaytime: failed to auto-initialize: %v", err))
		}
	}
	return displayLoc
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToDisplay converts a stored UTC time to the display timezone.
func ToDisplay(t time.Time) time.Time {
	return t.In(Location())
}

// Format formats a stored UTC time as RFC3339 in the display timezone.
// The offset is part of the rendered string, so clients see local wall time.
func Format(t time.Time) string {
	return t.In(Location()).Format(time.RFC3339)
}

// FormatPtr formats an optional timestamp, returning "" for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
