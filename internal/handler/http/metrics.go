package http

import (
	"net/http"
	"strconv"
	"time"

	"yanyucloud-api/internal/handler/http/responsewriter"
	"yanyucloud-api/pkg/cache"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Buckets span fast cache hits (5ms) through simulated network tests
	// and LLM round trips (10s) so p95/p99 stay readable at both ends.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	feedbackSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submitted_total",
			Help: "Total number of feedback submissions",
		},
		[]string{"status"},
	)

	networkTestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "network_tests_total",
			Help: "Total number of completed network tests",
		},
		[]string{"grade"},
	)

	chatCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_completions_total",
			Help: "Total number of chat completion requests",
		},
		[]string{"provider", "status"},
	)

	chatCompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_completion_duration_seconds",
			Help:    "Time taken to complete a chat request",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
	)
)

// MetricsMiddleware records per-request Prometheus metrics. All routes here
// are fixed paths (resource ids travel in query parameters), so the raw path
// is a safe label with bounded cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(rw.StatusCode())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsHandler returns the Prometheus exposition endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterCacheMetrics exposes the shared cache's counters to Prometheus.
// Call once at startup; registering the same cache twice panics.
func RegisterCacheMetrics(c *cache.Cache) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cache_entries",
		Help: "Current number of live cache entries",
	}, func() float64 { return float64(c.Stats().Entries) })
	promauto.NewCounterFunc(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits",
	}, func() float64 { return float64(c.Stats().Hits) })
	promauto.NewCounterFunc(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses",
	}, func() float64 { return float64(c.Stats().Misses) })
}

// RecordFeedbackSubmitted records the outcome of a feedback submission.
// Status is one of "relayed", "degraded", or "rejected".
func RecordFeedbackSubmitted(status string) {
	feedbackSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordNetworkTest records a completed network test by its grade.
func RecordNetworkTest(grade string) {
	networkTestsTotal.WithLabelValues(grade).Inc()
}

// RecordChatCompletion records a chat completion attempt and its latency.
func RecordChatCompletion(provider string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	chatCompletionsTotal.WithLabelValues(provider, status).Inc()
	chatCompletionDuration.Observe(duration.Seconds())
}
