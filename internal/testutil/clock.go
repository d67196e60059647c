package testutil

import (
	"fmt"
	"time"

	"github.com/zjrosen/releasedesk/internal/release"
)

// Now is the instant FixedClock reports by default: 2025-06-15 09:00 UTC.
var Now = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

// Today is the calendar date of Now.
var Today = release.DateOf(Now)

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

// NewFixedClock returns a clock pinned to Now.
func NewFixedClock() FixedClock { return FixedClock{T: Now} }

// Now implements release.Clock.
func (c FixedClock) Now() time.Time { return c.T }

// Days returns Today shifted by n days.
func Days(n int) release.Date {
	return release.DateOf(Now.AddDate(0, 0, n))
}

// SequentialIDs returns an id generator yielding rel-1, rel-2, ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rel-%d", n)
	}
}

// NewRegistry returns an empty registry with a fixed clock and sequential ids.
func NewRegistry() *release.Registry {
	return release.NewRegistry(
		release.WithClock(NewFixedClock()),
		release.WithIDGenerator(SequentialIDs()),
	)
}
