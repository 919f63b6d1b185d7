// Package redis provides the Redis client bootstrap and the Redis-backed
// blocklist used when the platform runs more than one API replica.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/byteverse/platform-api/internal/infrastructure/config"
)

// pingTimeout bounds the startup connectivity check. A Redis that cannot
// answer a ping within this window is treated as down.
const pingTimeout = 5 * time.Second

// Connect opens a client against the configured instance and pings it
// before handing it out, so a misconfigured address fails at startup
// rather than on the first blocklist lookup.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
