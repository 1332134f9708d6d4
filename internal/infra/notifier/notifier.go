// Package notifier delivers feedback submissions to an external webhook.
// Delivery is best effort: the webhook client rate limits itself, retries
// transient failures, and trips a circuit breaker when the endpoint is down.
package notifier

import (
	"yanyucloud-api/pkg/config"
)

// Config holds webhook delivery settings.
type Config struct {
	// WebhookURL is the destination. Empty disables delivery.
	WebhookURL string

	// RatePerSecond caps outbound delivery rate.
	RatePerSecond float64

	// Burst is the token bucket burst size.
	Burst int
}

// LoadConfig reads FEEDBACK_WEBHOOK_URL, FEEDBACK_WEBHOOK_RATE, and
// FEEDBACK_WEBHOOK_BURST. An empty URL is valid and yields a disabled
// notifier.
func LoadConfig() Config {
	return Config{
		WebhookURL:    config.GetEnvString("FEEDBACK_WEBHOOK_URL", ""),
		RatePerSecond: float64(config.GetEnvInt("FEEDBACK_WEBHOOK_RATE", 1)),
		Burst:         config.GetEnvInt("FEEDBACK_WEBHOOK_BURST", 5),
	}
}
