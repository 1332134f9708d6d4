// Package feedback implements the feedback submission use case: validation,
// short-window deduplication, and relay to an external notifier.
package feedback

import (
	"errors"
	"strings"
)

// ErrDuplicateSubmission indicates the same title and timestamp were
// submitted within the dedup window.
var ErrDuplicateSubmission = errors.New("duplicate feedback submission")

// ValidationError aggregates every violation found in one submission so the
// client can fix them all in a single round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid feedback: " + strings.Join(e.Violations, "; ")
}
