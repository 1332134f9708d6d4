// Package http provides the HTTP surface of the API: route handlers, edge
// middleware, health and monitor endpoints, and Prometheus metrics.
package http

import (
	"net/http"
	"runtime"
	"time"

	"yanyucloud-api/pkg/cache"
	"yanyucloud-api/pkg/ratelimit"
)

// CheckStatus describes one health check item.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// MemoryInfo reports process memory, in megabytes where noted.
type MemoryInfo struct {
	AllocMB      float64 `json:"allocMB"`
	TotalAllocMB float64 `json:"totalAllocMB"`
	SysMB        float64 `json:"sysMB"`
	NumGC        uint32  `json:"numGC"`
	Goroutines   int     `json:"goroutines"`
}

// HealthData is the payload of the /health endpoint.
type HealthData struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	UptimeSec int64                  `json:"uptimeSeconds"`
	Memory    MemoryInfo             `json:"memory"`
	Services  map[string]CheckStatus `json:"services"`
}

// HealthHandler reports service liveness plus per-dependency status. It has
// no hard dependencies of its own: each service registers a check function
// and the endpoint aggregates them.
type HealthHandler struct {
	Version string
	Start   time.Time

	// Checks maps a service name to its status probe. Probes must be fast
	// and non-blocking; the endpoint is polled by load balancers.
	Checks map[string]func() CheckStatus
}

// Handle returns the health payload. The overall status is "unhealthy" if
// any check reports unhealthy, otherwise "degraded" if any check degrades,
// otherwise "healthy". The endpoint always answers 200: monitors read the
// status field, and a process that can still marshal JSON is alive.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) (any, error) {
	services := make(map[string]CheckStatus, len(h.Checks))
	status := "healthy"
	for name, check := range h.Checks {
		cs := check()
		services[name] = cs
		switch cs.Status {
		case "unhealthy":
			status = "unhealthy"
		case "degraded":
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	return HealthData{
		Status:    status,
		Version:   h.Version,
		UptimeSec: int64(time.Since(h.Start).Seconds()),
		Memory:    readMemoryInfo(),
		Services:  services,
	}, nil
}

// RateLimiterCheck builds a check reporting limiter occupancy.
func RateLimiterCheck(limiter *ratelimit.Limiter, enabled bool) func() CheckStatus {
	return func() CheckStatus {
		if !enabled {
			return CheckStatus{Status: "healthy", Message: "disabled"}
		}
		return CheckStatus{
			Status: "healthy",
			Details: map[string]any{
				"active_keys":  limiter.KeyCount(),
				"memory_bytes": limiter.MemoryUsage(),
			},
		}
	}
}

// CacheCheck builds a check reporting cache occupancy and hit counters.
func CacheCheck(c *cache.Cache) func() CheckStatus {
	return func() CheckStatus {
		stats := c.Stats()
		return CheckStatus{
			Status: "healthy",
			Details: map[string]any{
				"entries": stats.Entries,
				"hits":    stats.Hits,
				"misses":  stats.Misses,
			},
		}
	}
}

// StaticCheck builds a check that always reports the given status. Used for
// dependencies whose configuration is fixed at startup, such as which chat
// provider is wired.
func StaticCheck(status, message string) func() CheckStatus {
	return func() CheckStatus {
		return CheckStatus{Status: status, Message: message}
	}
}

func readMemoryInfo() MemoryInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	const mb = 1024 * 1024
	return MemoryInfo{
		AllocMB:      float64(m.Alloc) / mb,
		TotalAllocMB: float64(m.TotalAlloc) / mb,
		SysMB:        float64(m.Sys) / mb,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
	}
}
