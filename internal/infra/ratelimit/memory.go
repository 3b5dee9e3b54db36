package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int64
	start time.Time
}

// MemoryStore is the default in-process store. Counters live for the
// process lifetime only; losing them on restart is acceptable.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryStore builds a store using the given clock. Pass time.Now
// in production; tests inject their own.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     now,
	}
}

// Incr is atomic with respect to concurrent callers sharing a key, so
// concurrent requests can never be undercounted.
func (m *MemoryStore) Incr(_ context.Context, key string, d time.Duration) (int64, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= d {
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// PurgeExpired drops windows older than d. Run it periodically so idle
// identities do not accumulate forever.
func (m *MemoryStore) PurgeExpired(d time.Duration) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, w := range m.windows {
		if now.Sub(w.start) >= d {
			delete(m.windows, key)
		}
	}
}

// StartCleanup purges expired windows every interval until ctx ends.
func (m *MemoryStore) StartCleanup(ctx context.Context, interval, windowDur time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.PurgeExpired(windowDur)
		}
	}
}
