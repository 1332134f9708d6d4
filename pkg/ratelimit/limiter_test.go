package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a controllable Clock for deterministic window tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
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

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(clock)

	const limit = 5
	window := time.Minute

	for i := 1; i <= limit; i++ {
		d := limiter.Allow("203.0.113.1", limit, window)
		if !d.Allowed {
			t.Fatalf("call %d: Allowed = false, want true", i)
		}
		if d.Remaining != limit-i {
			t.Errorf("call %d: Remaining = %d, want %d", i, d.Remaining, limit-i)
		}
	}

	d := limiter.Allow("203.0.113.1", limit, window)
	if d.Allowed {
		t.Fatalf("call %d: Allowed = true, want false", limit+1)
	}
	if d.Remaining != 0 {
		t.Errorf("denied Remaining = %d, want 0", d.Remaining)
	}
	if d.RetryAfter <= 0 || d.RetryAfter > window {
		t.Errorf("denied RetryAfter = %v, want in (0, %v]", d.RetryAfter, window)
	}
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(clock)

	for i := 0; i < 3; i++ {
		limiter.Allow("203.0.113.1", 3, time.Minute)
	}
	if d := limiter.Allow("203.0.113.1", 3, time.Minute); d.Allowed {
		t.Fatal("expected denial at limit")
	}

	clock.Advance(time.Minute)

	d := limiter.Allow("203.0.113.1", 3, time.Minute)
	if !d.Allowed {
		t.Fatal("expected allowance after window elapsed")
	}
	if d.Remaining != 2 {
		t.Errorf("Remaining after reset = %d, want 2", d.Remaining)
	}
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(clock)

	for i := 0; i < 2; i++ {
		limiter.Allow("203.0.113.1", 2, time.Minute)
	}
	if d := limiter.Allow("203.0.113.1", 2, time.Minute); d.Allowed {
		t.Fatal("first identifier should be exhausted")
	}
	if d := limiter.Allow("203.0.113.2", 2, time.Minute); !d.Allowed {
		t.Fatal("second identifier should be unaffected")
	}
}

func TestLimiter_CleanupRemovesStaleRecords(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(clock)

	limiter.Allow("a", 10, time.Minute)
	limiter.Allow("b", 10, time.Minute)
	clock.Advance(30 * time.Second)
	limiter.Allow("c", 10, time.Minute)

	clock.Advance(30 * time.Second) // "a" and "b" windows elapsed, "c" still active
	removed := limiter.Cleanup(time.Minute)
	if removed != 2 {
		t.Errorf("Cleanup removed = %d, want 2", removed)
	}
	if got := limiter.KeyCount(); got != 1 {
		t.Errorf("KeyCount = %d, want 1", got)
	}
}

func TestLimiter_ResetAtMatchesWindowStart(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(clock)
	start := clock.Now()

	d := limiter.Allow("a", 5, time.Minute)
	if want := start.Add(time.Minute); !d.ResetAt.Equal(want) {
		t.Errorf("ResetAt = %v, want %v", d.ResetAt, want)
	}

	clock.Advance(10 * time.Second)
	d = limiter.Allow("a", 5, time.Minute)
	if want := start.Add(time.Minute); !d.ResetAt.Equal(want) {
		t.Errorf("ResetAt after second call = %v, want window start + window %v", d.ResetAt, want)
	}
}

func TestLimiter_ConcurrentChecksHoldBudget(t *testing.T) {
	limiter := NewLimiter(&SystemClock{})

	const (
		limit      = 50
		goroutines = 200
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := limiter.Allow("shared", limit, time.Minute); d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("allowed = %d, want exactly %d", allowed, limit)
	}
}

func TestLimiter_MemoryUsageGrowsWithKeys(t *testing.T) {
	limiter := NewLimiter(newFakeClock())

	before := limiter.MemoryUsage()
	limiter.Allow("a", 10, time.Minute)
	limiter.Allow("b", 10, time.Minute)
	after := limiter.MemoryUsage()

	if after <= before {
		t.Errorf("MemoryUsage did not grow: before=%d after=%d", before, after)
	}
}
