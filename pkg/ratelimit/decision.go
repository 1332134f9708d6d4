package ratelimit

import (
	"fmt"
	"time"
)

// Decision represents the result of a rate limit check, with the metadata a
// client needs to understand the current window state.
type Decision struct {
	// Key is the identifier the check was made against (e.g. a client IP).
	Key string

	// Allowed indicates whether the request should be permitted.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	// Zero means the budget is exhausted.
	Remaining int

	// ResetAt is when the current window ends and the counter resets.
	ResetAt time.Time

	// RetryAfter is how long a denied client should wait before retrying.
	RetryAfter time.Duration
}

// String returns a human-readable representation of the decision.
func (d *Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf("Decision{Allowed: true, Key: %s, Remaining: %d/%d, ResetAt: %s}",
			d.Key, d.Remaining, d.Limit, d.ResetAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("Decision{Allowed: false, Key: %s, Limit: %d, RetryAfter: %s}",
		d.Key, d.Limit, d.RetryAfter)
}

// IsDenied reports whether the request was rejected.
func (d *Decision) IsDenied() bool {
	return !d.Allowed
}

// ResetAtUnix returns the window reset time as a Unix timestamp, for the
// X-RateLimit-Reset header.
func (d *Decision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, clamped at
// zero, for the Retry-After header.
func (d *Decision) RetryAfterSeconds() int64 {
	s := int64(d.RetryAfter.Seconds())
	if s < 0 {
		return 0
	}
	return s
}
