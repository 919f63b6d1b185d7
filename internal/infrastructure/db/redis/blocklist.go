package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blocklist is a Redis-backed blocklist shared across API instances.
// An address blocked by one instance is rejected by all of them.
// Key format: blocklist:<addr>, expiring after the configured TTL.
type Blocklist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBlocklist creates a Blocklist wrapping the given Redis client.
func NewBlocklist(client *redis.Client, ttl time.Duration) *Blocklist {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Blocklist{client: client, ttl: ttl}
}

// Contains reports whether addr is currently blocked.
func (b *Blocklist) Contains(ctx context.Context, addr string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(addr)).Result()
	if err != nil {
		return false, fmt.Errorf("blocklist check: %w", err)
	}
	return n > 0, nil
}

// Add blocks addr until the TTL elapses.
func (b *Blocklist) Add(ctx context.Context, addr string) error {
	return b.client.Set(ctx, b.key(addr), "1", b.ttl).Err()
}

func (b *Blocklist) key(addr string) string {
	return fmt.Sprintf("blocklist:%s", addr)
}
