package ratelimit

import (
	"sync"
	"time"
)

// windowRecord tracks one identifier's request count within its current
// fixed window. A record whose window has fully elapsed is stale and must be
// treated as absent.
type windowRecord struct {
	count       int
	windowStart time.Time
}

// Limiter is a thread-safe fixed-window rate limiter keyed by an arbitrary
// string identifier (typically a client IP).
//
// The check-then-increment in Allow is performed under a single lock
// acquisition, so concurrent requests for the same identifier cannot both
// observe count < limit and race past the budget.
//
// Memory is bounded two ways: Allow opportunistically sweeps stale records
// (at most once per purgeInterval), and callers may run Cleanup from a
// background goroutine. The key space itself is unbounded.
type Limiter struct {
	mu        sync.Mutex
	records   map[string]*windowRecord
	clock     Clock
	lastPurge time.Time

	// purgeInterval gates the opportunistic sweep inside Allow.
	purgeInterval time.Duration
}

// NewLimiter creates a fixed-window limiter. A nil clock defaults to the
// system clock.
func NewLimiter(clock Clock) *Limiter {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &Limiter{
		records:       make(map[string]*windowRecord),
		clock:         clock,
		lastPurge:     clock.Now(),
		purgeInterval: time.Minute,
	}
}

// Allow checks whether a request from key is within limit for the given
// window, incrementing the counter when it is.
//
// Behavior per call:
//  1. Opportunistically purge records whose window has fully elapsed.
//  2. No record, or a stale record, is replaced with count=1: allowed.
//  3. count < limit: increment, allowed.
//  4. Otherwise: denied, with RetryAfter set to the window remainder.
func (l *Limiter) Allow(key string, limit int, window time.Duration) *Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.purgeStaleLocked(now, window)

	rec, ok := l.records[key]
	if !ok || now.Sub(rec.windowStart) >= window {
		l.records[key] = &windowRecord{count: 1, windowStart: now}
		return &Decision{
			Key:       key,
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - 1,
			ResetAt:   now.Add(window),
		}
	}

	resetAt := rec.windowStart.Add(window)
	if rec.count < limit {
		rec.count++
		return &Decision{
			Key:       key,
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - rec.count,
			ResetAt:   resetAt,
		}
	}

	return &Decision{
		Key:        key,
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: resetAt.Sub(now),
	}
}

// purgeStaleLocked removes records whose window has fully elapsed. It runs at
// most once per purgeInterval so Allow stays O(1) amortized. Must be called
// with the lock held.
func (l *Limiter) purgeStaleLocked(now time.Time, window time.Duration) {
	if now.Sub(l.lastPurge) < l.purgeInterval {
		return
	}
	l.lastPurge = now

	for key, rec := range l.records {
		if now.Sub(rec.windowStart) >= window {
			delete(l.records, key)
		}
	}
}

// Cleanup removes all records whose window elapsed before the given window
// duration ago. It is intended to run from a periodic background goroutine
// and returns the number of records removed.
func (l *Limiter) Cleanup(window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	removed := 0
	for key, rec := range l.records {
		if now.Sub(rec.windowStart) >= window {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// KeyCount returns the number of identifiers currently tracked.
func (l *Limiter) KeyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// MemoryUsage returns the estimated memory footprint of the record table in
// bytes. The estimate covers map entry overhead and the record struct; it is
// for monitoring, not accounting.
func (l *Limiter) MemoryUsage() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	const (
		mapEntryOverhead = 48
		recordSize       = 32
	)
	return int64(len(l.records) * (mapEntryOverhead + recordSize))
}
