package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"yanyucloud-api/internal/handler/http/requestid"
	"yanyucloud-api/internal/handler/http/respond"
	"yanyucloud-api/pkg/ratelimit"
)

// HandlerFunc is a governed route handler. It returns the payload for a
// success envelope, or an error the governor turns into an error envelope.
// Handlers never write the response body themselves.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) (any, error)

// Counters tracks request outcomes since process start, for /monitor.
type Counters struct {
	Total       atomic.Int64
	Succeeded   atomic.Int64
	Failed      atomic.Int64
	RateLimited atomic.Int64
	Panicked    atomic.Int64
}

// CountersSnapshot is a point-in-time copy of Counters.
type CountersSnapshot struct {
	Total       int64 `json:"total"`
	Succeeded   int64 `json:"succeeded"`
	Failed      int64 `json:"failed"`
	RateLimited int64 `json:"rateLimited"`
	Panicked    int64 `json:"panicked"`
}

// Snapshot returns a consistent-enough copy for reporting.
func (c *Counters) Snapshot() CountersSnapshot {
	return CountersSnapshot{
		Total:       c.Total.Load(),
		Succeeded:   c.Succeeded.Load(),
		Failed:      c.Failed.Load(),
		RateLimited: c.RateLimited.Load(),
		Panicked:    c.Panicked.Load(),
	}
}

// Governor wraps route handlers with the shared request pipeline: start and
// end logging, per-identifier rate limiting, panic recovery, and envelope
// conversion. Handlers wrapped by the same Governor share one limiter store,
// so identifiers are budgeted across routes that use the same limit options.
type Governor struct {
	limiter   *ratelimit.Limiter
	config    ratelimit.Config
	extractor IdentifierExtractor
	metrics   ratelimit.MetricsRecorder
	logger    *slog.Logger
	counters  Counters
}

// NewGovernor creates a Governor. A nil metrics recorder disables metric
// recording; a nil logger falls back to slog.Default().
func NewGovernor(
	limiter *ratelimit.Limiter,
	config ratelimit.Config,
	extractor IdentifierExtractor,
	metrics ratelimit.MetricsRecorder,
	logger *slog.Logger,
) *Governor {
	if metrics == nil {
		metrics = ratelimit.NewNoopMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Governor{
		limiter:   limiter,
		config:    config,
		extractor: extractor,
		metrics:   metrics,
		logger:    logger,
	}
}

// Counters exposes the request counters for /monitor.
func (g *Governor) Counters() *Counters {
	return &g.counters
}

// routeOptions holds per-route overrides of the governor defaults.
type routeOptions struct {
	limit         int
	window        time.Duration
	skipRateLimit bool
	successStatus int
}

// Option customizes how a single route is governed.
type Option func(*routeOptions)

// WithLimit overrides the request budget for one route.
func WithLimit(limit int) Option {
	return func(o *routeOptions) { o.limit = limit }
}

// WithWindow overrides the rate-limit window for one route.
func WithWindow(window time.Duration) Option {
	return func(o *routeOptions) { o.window = window }
}

// WithoutRateLimit exempts a route from rate limiting. Used for probes that
// load balancers poll more often than any client budget allows.
func WithoutRateLimit() Option {
	return func(o *routeOptions) { o.skipRateLimit = true }
}

// WithStatus sets the HTTP status for success envelopes. Default is 200.
func WithStatus(status int) Option {
	return func(o *routeOptions) { o.successStatus = status }
}

// Wrap returns an http.Handler running handler under the governor pipeline.
func (g *Governor) Wrap(handler HandlerFunc, opts ...Option) http.Handler {
	options := routeOptions{
		limit:         g.config.Limit,
		window:        g.config.Window,
		successStatus: http.StatusOK,
	}
	for _, opt := range opts {
		opt(&options)
	}

	// Routes with their own limit or window form a separate budget class,
	// tracked under a separate window record per identifier.
	budgetSuffix := ""
	if options.limit != g.config.Limit || options.window != g.config.Window {
		budgetSuffix = fmt.Sprintf("|%d/%s", options.limit, options.window)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestid.FromContext(r.Context())
		identifier := g.extractor.Extract(r)

		g.counters.Total.Add(1)

		g.logger.Info("request started",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("identifier", identifier),
		)

		defer func() {
			if rec := recover(); rec != nil {
				g.counters.Panicked.Add(1)
				g.logger.Error("request panicked",
					slog.String("request_id", reqID),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
				)
				g.writeTiming(w, start)
				respond.Fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()

		if g.config.Enabled && !options.skipRateLimit {
			checkStart := time.Now()
			decision := g.limiter.Allow(identifier+budgetSuffix, options.limit, options.window)
			g.metrics.RecordCheckDuration(time.Since(checkStart))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))

			if decision.IsDenied() {
				g.counters.RateLimited.Add(1)
				g.metrics.RecordDenied(r.URL.Path)
				w.Header().Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds(), 10))
				g.logger.Warn("rate limit exceeded",
					slog.String("request_id", reqID),
					slog.String("identifier", identifier),
					slog.Int("limit", decision.Limit),
					slog.String("path", r.URL.Path),
					slog.Int64("retry_after", decision.RetryAfterSeconds()),
				)
				g.writeTiming(w, start)
				respond.Fail(w, r, http.StatusTooManyRequests, "RATE_LIMITED",
					"too many requests, please try again later")
				return
			}
			g.metrics.RecordAllowed(r.URL.Path)
		}

		data, err := handler(w, r)

		duration := time.Since(start)
		g.writeTiming(w, start)

		if err != nil {
			g.counters.Failed.Add(1)
			respond.Error(w, r, err)
			g.logger.Info("request failed",
				slog.String("request_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", duration),
				slog.String("error", respond.SanitizeError(err)),
			)
			return
		}

		g.counters.Succeeded.Add(1)
		respond.OK(w, r, options.successStatus, data)
		g.logger.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", options.successStatus),
			slog.Duration("duration", duration),
		)
	})
}

func (g *Governor) writeTiming(w http.ResponseWriter, start time.Time) {
	w.Header().Set("X-Response-Time", fmt.Sprintf("%dms", time.Since(start).Milliseconds()))
}
