// Package repository stores the token deny-list.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/allisson/trustregistry/internal/clock"
)

// MemoryDenyList keeps revoked token ids in process memory. Entries are
// dropped lazily once their expiry passes.
type MemoryDenyList struct {
	mu      sync.Mutex
	entries map[string]int64
	clock   clock.Clock
}

// NewMemoryDenyList creates an empty in-memory deny-list.
func NewMemoryDenyList(clk clock.Clock) *MemoryDenyList {
	return &MemoryDenyList{
		entries: make(map[string]int64),
		clock:   clk,
	}
}

// Deny records jti as revoked until ttl elapses.
func (d *MemoryDenyList) Deny(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	seconds := int64(ttl / time.Second)
	if ttl%time.Second != 0 {
		seconds++
	}
	d.entries[jti] = d.clock.Now() + seconds
	return nil
}

// IsDenied reports whether jti is on the deny-list.
func (d *MemoryDenyList) IsDenied(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiresAt, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if d.clock.Now() >= expiresAt {
		delete(d.entries, jti)
		return false, nil
	}
	return true, nil
}
