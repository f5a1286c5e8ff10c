package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard serialises short critical sections across replicas with SETNX.
// A nil Guard or nil client always grants the lock; Postgres constraints
// remain the source of truth.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Guard{client: client, ttl: ttl}
}

// Connect parses url and pings the server. An empty url yields a nil client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Acquire returns a release func and whether the lock was obtained.
// Redis failures fail open.
func (g *Guard) Acquire(ctx context.Context, key string) (func(), bool) {
	noop := func() {}
	if g == nil || g.client == nil {
		return noop, true
	}

	ok, err := g.client.SetNX(ctx, "hrms:lock:"+key, "1", g.ttl).Result()
	if err != nil {
		slog.Warn("redis lock unavailable", "key", key, "err", err)
		return noop, true
	}
	if !ok {
		return noop, false
	}
	return func() {
		if err := g.client.Del(context.Background(), "hrms:lock:"+key).Err(); err != nil {
			slog.Warn("redis lock release failed", "key", key, "err", err)
		}
	}, true
}

func (g *Guard) Ping(ctx context.Context) error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Ping(ctx).Err()
}
