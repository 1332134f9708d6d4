package notifier

import (
	"context"

	"yanyucloud-api/internal/usecase/feedback"
)

// Noop is the notifier used when no webhook is configured.
type Noop struct{}

// NewNoop creates a disabled notifier.
func NewNoop() *Noop {
	return &Noop{}
}

// Name implements feedback.Notifier.
func (n *Noop) Name() string { return "noop" }

// IsEnabled implements feedback.Notifier. Always false.
func (n *Noop) IsEnabled() bool { return false }

// Send discards the submission.
func (n *Noop) Send(context.Context, *feedback.Submission) error {
	return nil
}
