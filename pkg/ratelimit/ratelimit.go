// Package ratelimit provides framework-agnostic request rate limiting.
//
// The limiter implements a fixed-window counter: one record per identifier
// holding a count and a window start time. The counter resets fully at
// window boundaries, so bursts straddling a boundary can momentarily reach
// up to twice the nominal rate. This is an accepted tradeoff for O(1) memory
// and time per check, not a bug; callers needing strict smoothing should
// substitute a token-bucket or sliding-log design.
package ratelimit

import "time"

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation backed by the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// MetricsRecorder receives rate limiting events for observability.
//
// Implementations can use Prometheus or a no-op recorder for tests.
type MetricsRecorder interface {
	// RecordAllowed records a check that permitted the request.
	RecordAllowed(endpoint string)

	// RecordDenied records a check that rejected the request.
	RecordDenied(endpoint string)

	// RecordCheckDuration records how long a rate limit check took.
	RecordCheckDuration(duration time.Duration)

	// SetActiveKeys records the number of identifiers currently tracked.
	SetActiveKeys(count int)
}
