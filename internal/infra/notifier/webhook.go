package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"yanyucloud-api/internal/handler/http/respond"
	"yanyucloud-api/internal/resilience/circuitbreaker"
	"yanyucloud-api/internal/resilience/retry"
	"yanyucloud-api/internal/usecase/feedback"
)

// Webhook posts feedback submissions to a configured HTTP endpoint as JSON.
type Webhook struct {
	url            string
	client         *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// webhookPayload is the wire shape delivered to the endpoint.
type webhookPayload struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	Rating    int    `json:"rating,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewWebhook creates a webhook notifier. An empty URL yields a disabled
// notifier whose Send is never called by the feedback service.
func NewWebhook(cfg Config) *Webhook {
	return &Webhook{
		url:            cfg.WebhookURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebhookConfig()),
		retryConfig:    retry.WebhookConfig(),
	}
}

// Name implements feedback.Notifier.
func (w *Webhook) Name() string { return "webhook" }

// IsEnabled implements feedback.Notifier.
func (w *Webhook) IsEnabled() bool { return w.url != "" }

// Send delivers the submission, honoring the outbound rate limit, retrying
// transient failures, and short-circuiting while the breaker is open.
func (w *Webhook) Send(ctx context.Context, sub *feedback.Submission) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook rate limit wait: %w", err)
	}

	return retry.WithBackoff(ctx, w.retryConfig, func() error {
		_, err := w.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, w.post(ctx, sub)
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("feedback webhook circuit breaker open, delivery skipped")
			return fmt.Errorf("webhook unavailable: circuit breaker open")
		}
		return err
	})
}

func (w *Webhook) post(ctx context.Context, sub *feedback.Submission) error {
	payload := webhookPayload{
		Text:      fmt.Sprintf("[%s] %s\n%s", sub.Type, sub.Title, sub.Content),
		Type:      sub.Type,
		Rating:    sub.Rating,
		Timestamp: sub.Timestamp,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		// Transport failures are retryable. The URL may carry credentials,
		// so the message is sanitized before it can reach a log.
		return &retry.HTTPError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    respond.Sanitize(err.Error()),
		}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    "webhook delivery rejected",
		}
	}
	return nil
}
