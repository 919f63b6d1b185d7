// Package abuse tracks per-source request activity and maintains the
// blocklist of addresses denied service. The monitor and blocklist are
// injected components owned by the caller, never package singletons, so a
// multi-instance deployment can swap the in-memory blocklist for the
// Redis-backed one without touching the middleware.
package abuse

import (
	"context"
	"sync"
	"time"
)

// Blocklist is the set of source addresses denied service regardless of
// credential validity.
type Blocklist interface {
	Contains(ctx context.Context, addr string) (bool, error)
	Add(ctx context.Context, addr string) error
}

// MemoryBlocklist is a mutex-guarded, process-local blocklist. Entries
// expire after a fixed TTL; an expired entry is pruned on lookup.
type MemoryBlocklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

const defaultBlockTTL = time.Hour

// NewMemoryBlocklist builds a blocklist with the given entry TTL.
// A non-positive ttl falls back to one hour.
func NewMemoryBlocklist(ttl time.Duration) *MemoryBlocklist {
	if ttl <= 0 {
		ttl = defaultBlockTTL
	}
	return &MemoryBlocklist{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Contains reports whether addr is currently blocked.
func (b *MemoryBlocklist) Contains(_ context.Context, addr string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.entries[addr]
	if !ok {
		return false, nil
	}
	if b.now().After(expiry) {
		delete(b.entries, addr)
		return false, nil
	}
	return true, nil
}

// Add blocks addr for the configured TTL. Re-adding refreshes the expiry.
func (b *MemoryBlocklist) Add(_ context.Context, addr string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[addr] = b.now().Add(b.ttl)
	return nil
}

// Len returns the number of live entries, pruning expired ones.
func (b *MemoryBlocklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for addr, expiry := range b.entries {
		if now.After(expiry) {
			delete(b.entries, addr)
		}
	}
	return len(b.entries)
}
