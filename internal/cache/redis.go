package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ensure redisStore implements Store
var _ Store = (*redisStore)(nil)

// redisStore backs the cache with a networked Redis instance. Expiry is
// Redis's own (SET with TTL), so the lazy-purge contract holds for free.
type redisStore struct {
	client *redis.Client
}

// NewRedis connects to addr and verifies the instance answers a ping
// within a short bound. Callers should fall back to the in-process store
// on error and not retry.
func NewRedis(ctx context.Context, addr string) (Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &redisStore{client: client}, nil
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}
	return payload, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (r *redisStore) Close() error { return r.client.Close() }
