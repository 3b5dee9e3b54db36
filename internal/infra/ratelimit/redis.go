package ratelimit

import (
	"context"
	"time"

	red "cuisine-chat/internal/infra/redis"
)

// RedisStore keeps window counters in Redis so the budget holds across
// replicas. INCR is atomic; the first increment of a window sets the
// key's TTL to the window duration.
type RedisStore struct {
	client red.Client
}

func NewRedisStore(client red.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return 0, err
		}
	}
	return count, nil
}
