package bank

import (
	"sync"
	"time"
)

// =============================================================================
// CLOCK - Injectable time source
// =============================================================================

// Clock supplies the timestamps the ledger stamps on writes (payment request
// created_at, transaction timestamps, dispute opened_at). Tests inject a
// ManualClock for deterministic output.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	// Second precision keeps snapshot timestamps stable across marshal cycles.
	return time.Now().UTC().Truncate(time.Second)
}

// SystemClock returns the wall clock, UTC, second precision.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a settable clock for tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(at time.Time) *ManualClock {
	return &ManualClock{now: at.UTC()}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at.UTC()
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
