// Package clock supplies the registries' notion of current time: integer unix
// seconds that never move backwards within a process.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time in unix seconds.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock and never reports a value lower than one it
// already returned, even if the wall clock is stepped back.
type SystemClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSystemClock creates a monotonic wall clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{now: time.Now}
}

// Now returns max(wall clock, last returned value).
func (c *SystemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.now().Unix()
	if current < c.last {
		return c.last
	}
	c.last = current
	return current
}

// Manual is a Clock for tests that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual creates a manual clock starting at start.
func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d seconds. Negative values are ignored.
func (m *Manual) Advance(d int64) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}
