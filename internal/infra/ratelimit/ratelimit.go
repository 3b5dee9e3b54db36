// Package ratelimit provides fixed-window admission control keyed by
// caller identity. The window store is injected so the limiter can be
// unit tested with a controlled clock and backed by Redis in
// deployments with more than one instance.
package ratelimit

import (
	"context"
	"time"
)

// Store counts attempts per key within successive fixed windows.
type Store interface {
	// Incr increments the counter for key, starting a fresh window of
	// the given duration when none exists or the current one has
	// elapsed, and returns the post-increment count. The increment
	// happens even when the attempt will be rejected: rejected
	// attempts still count.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

func NewLimiter(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow reports whether the attempt from identity is admitted.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	count, err := l.store.Incr(ctx, "rate_limit:"+identity, l.window)
	if err != nil {
		return false, err
	}
	return count <= int64(l.max), nil
}
