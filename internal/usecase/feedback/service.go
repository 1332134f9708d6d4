package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"yanyucloud-api/internal/observability/logging"
	"yanyucloud-api/pkg/cache"
)

// Submission is one piece of user feedback.
type Submission struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Contact   string `json:"contact,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Result reports the outcome of a submission. Status is "relayed" when the
// notifier delivered it, or "accepted" when delivery was skipped or failed
// but the submission itself was recorded.
type Result struct {
	FeedbackID string `json:"feedbackId"`
	Status     string `json:"status"`
}

// Notifier delivers a submission to an external channel. Implementations
// handle their own rate limiting and retries.
type Notifier interface {
	// Name returns the channel identifier used in logs.
	Name() string

	// IsEnabled reports whether the channel is configured for delivery.
	IsEnabled() bool

	// Send delivers the submission. An error means delivery failed after
	// the channel's own retries.
	Send(ctx context.Context, sub *Submission) error
}

const (
	maxTitleLen   = 200
	maxContentLen = 5000
	maxContactLen = 200

	// dedupTTL bounds how long an identical title+timestamp pair is treated
	// as a duplicate.
	dedupTTL = 5 * time.Minute
)

var validTypes = map[string]bool{
	"bug":         true,
	"feature":     true,
	"improvement": true,
	"other":       true,
}

// Service coordinates validation, deduplication, and relay.
type Service struct {
	Cache    *cache.Cache
	Notifier Notifier
	Logger   *slog.Logger
}

// Submit validates and records a submission.
//
// Returns *ValidationError with every violation when the input is invalid,
// ErrDuplicateSubmission when the same title+timestamp was seen within the
// dedup window. Relay failure does not fail the submission: delivery is best
// effort and the degraded outcome is reflected in Result.Status.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*Result, error) {
	if verr := validate(sub); verr != nil {
		return nil, verr
	}

	dedupKey := fmt.Sprintf("feedback:dedupe:%s|%s", sub.Title, sub.Timestamp)
	if _, exists := s.Cache.Get(dedupKey); exists {
		return nil, ErrDuplicateSubmission
	}
	s.Cache.Set(dedupKey, true, dedupTTL)

	result := &Result{
		FeedbackID: "fb-" + uuid.NewString(),
		Status:     "accepted",
	}
	logger := logging.WithRequestID(ctx, s.Logger)

	if s.Notifier != nil && s.Notifier.IsEnabled() {
		if err := s.Notifier.Send(ctx, sub); err != nil {
			// Delivery is best effort. The user already got their receipt.
			logger.Warn("feedback relay failed, submission accepted without delivery",
				slog.String("feedback_id", result.FeedbackID),
				slog.String("channel", s.Notifier.Name()),
				slog.Any("error", err),
			)
		} else {
			result.Status = "relayed"
		}
	}

	logger.Info("feedback submitted",
		slog.String("feedback_id", result.FeedbackID),
		slog.String("type", sub.Type),
		slog.String("status", result.Status),
	)
	return result, nil
}

// validate collects every violation rather than stopping at the first.
func validate(sub *Submission) *ValidationError {
	var violations []string

	if !validTypes[sub.Type] {
		violations = append(violations, "type must be one of: bug, feature, improvement, other")
	}
	if strings.TrimSpace(sub.Title) == "" {
		violations = append(violations, "title is required")
	} else if len(sub.Title) > maxTitleLen {
		violations = append(violations, fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	if strings.TrimSpace(sub.Content) == "" {
		violations = append(violations, "content is required")
	} else if len(sub.Content) > maxContentLen {
		violations = append(violations, fmt.Sprintf("content must be at most %d characters", maxContentLen))
	}
	if len(sub.Contact) > maxContactLen {
		violations = append(violations, fmt.Sprintf("contact must be at most %d characters", maxContactLen))
	}
	if sub.Rating != 0 && (sub.Rating < 1 || sub.Rating > 5) {
		violations = append(violations, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(sub.Timestamp) == "" {
		violations = append(violations, "timestamp is required")
	} else if _, err := time.Parse(time.RFC3339, sub.Timestamp); err != nil {
		violations = append(violations, "timestamp must be RFC3339")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
