package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateLimitAllowedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_allowed_total",
			Help: "Total number of requests allowed by the rate limiter",
		},
		[]string{"endpoint"},
	)

	rateLimitDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_denied_total",
			Help: "Total number of requests denied by the rate limiter",
		},
		[]string{"endpoint"},
	)

	rateLimitCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ratelimit_check_duration_seconds",
			Help:    "Duration of rate limit checks in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 10, 6),
		},
	)

	rateLimitActiveKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratelimit_active_keys",
			Help: "Number of identifiers currently tracked by the rate limiter",
		},
	)
)

// PrometheusMetrics is a MetricsRecorder backed by Prometheus collectors
// registered on the default registry.
type PrometheusMetrics struct{}

// NewPrometheusMetrics returns a Prometheus-backed metrics recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

// RecordAllowed increments the allowed counter for the endpoint.
func (m *PrometheusMetrics) RecordAllowed(endpoint string) {
	rateLimitAllowedTotal.WithLabelValues(endpoint).Inc()
}

// RecordDenied increments the denied counter for the endpoint.
func (m *PrometheusMetrics) RecordDenied(endpoint string) {
	rateLimitDeniedTotal.WithLabelValues(endpoint).Inc()
}

// RecordCheckDuration observes the duration of a rate limit check.
func (m *PrometheusMetrics) RecordCheckDuration(duration time.Duration) {
	rateLimitCheckDuration.Observe(duration.Seconds())
}

// SetActiveKeys updates the active key gauge.
func (m *PrometheusMetrics) SetActiveKeys(count int) {
	rateLimitActiveKeys.Set(float64(count))
}
