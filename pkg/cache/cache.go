// Package cache provides a process-wide TTL key-value store.
//
// Entries expire lazily: a read past an entry's expiry behaves as a miss and
// evicts the entry. There is no size bound and no eviction policy beyond
// TTL, so callers caching many unique keys with long TTLs can grow the table
// without limit. That is a known limitation of this design, not something
// the cache papers over; deployments needing a bound should front this with
// a capped store. State lives only in process memory and does not survive
// restarts, and in horizontally scaled deployments each process has an
// independent view.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// entry is a stored value with its absolute expiry. Values are opaque to the
// cache; they are neither interpreted nor copied.
type entry struct {
	value  any
	expiry time.Time
}

// Stats is a point-in-time snapshot of cache activity, consumed by the
// monitoring endpoint.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
}

// Cache is a thread-safe in-memory TTL store. Construct one per process
// with New and inject it where needed; the zero value is not usable.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   Clock

	hits   int64
	misses int64
	sets   int64
}

// New creates an empty cache. A nil clock defaults to the system clock.
func New(clock Clock) *Cache {
	if clock == nil {
		clock = systemClock{}
	}
	return &Cache{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

// Set stores value under key, overwriting any existing entry, with an
// absolute expiry of now + ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:  value,
		expiry: c.clock.Now().Add(ttl),
	}
	c.sets++
}

// Get returns the value stored under key. A key that was never set, or
// whose entry has expired, reports ok=false; an expired entry is evicted on
// the read that discovers it, so it cannot resurrect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !c.clock.Now().Before(e.expiry) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	c.hits++
	return e.value, true
}

// Delete removes exactly key, if present. Use this to release a single
// entry; Clear's substring matching would also catch keys that merely
// contain it as a prefix.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes entries. With no argument the whole table is emptied; with a
// pattern, every key containing the pattern as a plain substring is removed.
// No glob or regex semantics.
func (c *Cache) Clear(pattern ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(pattern) == 0 || pattern[0] == "" {
		c.entries = make(map[string]entry)
		return
	}

	p := pattern[0]
	for key := range c.entries {
		if strings.Contains(key, p) {
			delete(c.entries, key)
		}
	}
}

// Sweep removes all expired entries and returns how many were removed. It
// complements lazy eviction for keys that are written once and never read
// again, and is intended to run from a periodic background goroutine.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently stored, including entries
// that have expired but not yet been evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of cache activity counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
	}
}
