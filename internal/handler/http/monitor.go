package http

import (
	"net/http"
	"time"

	"yanyucloud-api/internal/handler/http/middleware"
	"yanyucloud-api/pkg/cache"
	"yanyucloud-api/pkg/ratelimit"
)

// MonitorData is the payload of the /monitor endpoint: a point-in-time view
// of request traffic, limiter occupancy, cache usage, and process memory.
type MonitorData struct {
	Version     string                      `json:"version"`
	UptimeSec   int64                       `json:"uptimeSeconds"`
	Requests    middleware.CountersSnapshot `json:"requests"`
	RateLimiter RateLimiterStats            `json:"rateLimiter"`
	Cache       cache.Stats                 `json:"cache"`
	Memory      MemoryInfo                  `json:"memory"`
	Timestamp   string                      `json:"timestamp"`
}

// RateLimiterStats reports limiter occupancy for operational dashboards.
type RateLimiterStats struct {
	Enabled     bool  `json:"enabled"`
	ActiveKeys  int   `json:"activeKeys"`
	MemoryBytes int64 `json:"memoryBytes"`
}

// MonitorHandler serves the operational snapshot endpoint.
type MonitorHandler struct {
	Version  string
	Start    time.Time
	Counters *middleware.Counters
	Limiter  *ratelimit.Limiter
	Config   ratelimit.Config
	Cache    *cache.Cache
}

// Handle builds the monitor snapshot.
func (h *MonitorHandler) Handle(w http.ResponseWriter, r *http.Request) (any, error) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	return MonitorData{
		Version:   h.Version,
		UptimeSec: int64(time.Since(h.Start).Seconds()),
		Requests:  h.Counters.Snapshot(),
		RateLimiter: RateLimiterStats{
			Enabled:     h.Config.Enabled,
			ActiveKeys:  h.Limiter.KeyCount(),
			MemoryBytes: h.Limiter.MemoryUsage(),
		},
		Cache:     h.Cache.Stats(),
		Memory:    readMemoryInfo(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
