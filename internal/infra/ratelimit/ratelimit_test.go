package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock, *MemoryStore) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := NewMemoryStore(clock.Now)
	return NewLimiter(store, max, window), clock, store
}

func TestLimiterAdmitsUpToMax(t *testing.T) {
	l, _, _ := newTestLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !ok {
			t.Fatalf("attempt %d rejected, want admitted", i)
		}
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow #4: %v", err)
	}
	if ok {
		t.Fatal("4th attempt within window admitted, want rejected")
	}
}

func TestLimiterWindowElapses(t *testing.T) {
	l, clock, _ := newTestLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = l.Allow(ctx, "10.0.0.1")
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Fatal("expected rejection before window elapsed")
	}

	clock.Advance(time.Minute)

	ok, err := l.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow after window: %v", err)
	}
	if !ok {
		t.Fatal("expected admission after window elapsed")
	}
}

func TestLimiterRejectedAttemptsStillCount(t *testing.T) {
	l, clock, store := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "id") // count=1, admitted
	_, _ = l.Allow(ctx, "id") // count=2, rejected but still counted

	if n, _ := store.Incr(ctx, "rate_limit:id", time.Minute); n != 3 {
		t.Fatalf("counter = %d, want 3 (rejected attempt counted)", n)
	}

	// A fresh window resets regardless of how many rejections piled up.
	clock.Advance(time.Minute)
	if ok, _ := l.Allow(ctx, "id"); !ok {
		t.Fatal("expected admission in fresh window")
	}
}

func TestLimiterIsolatesIdentities(t *testing.T) {
	l, _, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatal("first attempt for a rejected")
	}
	if ok, _ := l.Allow(ctx, "a"); ok {
		t.Fatal("second attempt for a admitted")
	}
	if ok, _ := l.Allow(ctx, "b"); !ok {
		t.Fatal("b must have its own budget")
	}
}

func TestMemoryStoreConcurrentIncrNeverUndercounts(t *testing.T) {
	store := NewMemoryStore(time.Now)
	ctx := context.Background()

	const goroutines = 32
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_, _ = store.Incr(ctx, "shared", time.Hour)
			}
		}()
	}
	wg.Wait()

	n, _ := store.Incr(ctx, "shared", time.Hour)
	if n != goroutines*perGoroutine+1 {
		t.Fatalf("counter = %d, want %d", n, goroutines*perGoroutine+1)
	}
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	_, _ = store.Incr(ctx, "old", time.Minute)
	clock.Advance(2 * time.Minute)
	_, _ = store.Incr(ctx, "fresh", time.Minute)

	store.PurgeExpired(time.Minute)

	store.mu.Lock()
	_, oldKept := store.windows["old"]
	_, freshKept := store.windows["fresh"]
	store.mu.Unlock()

	if oldKept {
		t.Fatal("expired window survived purge")
	}
	if !freshKept {
		t.Fatal("live window was purged")
	}
}
