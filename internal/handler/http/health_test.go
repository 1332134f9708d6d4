package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yanyucloud-api/internal/handler/http/middleware"
	"yanyucloud-api/pkg/cache"
	"yanyucloud-api/pkg/ratelimit"
)

func TestHealthHandlerAllHealthy(t *testing.T) {
	h := &HealthHandler{
		Version: "1.0.0",
		Start:   time.Now().Add(-90 * time.Second),
		Checks: map[string]func() CheckStatus{
			"rate_limiter": RateLimiterCheck(ratelimit.NewLimiter(&ratelimit.SystemClock{}), true),
			"cache":        CacheCheck(cache.New(&ratelimit.SystemClock{})),
			"chat":         StaticCheck("healthy", "provider: noop"),
		},
	}

	rec := httptest.NewRecorder()
	data, err := h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	health, ok := data.(HealthData)
	if !ok {
		t.Fatalf("Handle() returned %T, want HealthData", data)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if health.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", health.Version)
	}
	if health.UptimeSec < 90 {
		t.Errorf("uptime = %d, want >= 90", health.UptimeSec)
	}
	if len(health.Services) != 3 {
		t.Errorf("len(services) = %d, want 3", len(health.Services))
	}
	if health.Memory.Goroutines <= 0 {
		t.Error("goroutine count not populated")
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("Cache-Control header not set")
	}
}

func TestHealthHandlerAggregatesWorstStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]func() CheckStatus
		want   string
	}{
		{
			name: "degraded check degrades overall",
			checks: map[string]func() CheckStatus{
				"a": StaticCheck("healthy", ""),
				"b": StaticCheck("degraded", "circuit open"),
			},
			want: "degraded",
		},
		{
			name: "unhealthy check wins over degraded",
			checks: map[string]func() CheckStatus{
				"a": StaticCheck("degraded", ""),
				"b": StaticCheck("unhealthy", "down"),
			},
			want: "unhealthy",
		},
		{
			name:   "no checks is healthy",
			checks: nil,
			want:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{Version: "test", Start: time.Now(), Checks: tt.checks}
			data, err := h.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := data.(HealthData).Status; got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonitorHandler(t *testing.T) {
	clock := &ratelimit.SystemClock{}
	limiter := ratelimit.NewLimiter(clock)
	store := cache.New(clock)

	limiter.Allow("10.0.0.1", 100, time.Minute)
	store.Set("k", "v", time.Minute)
	store.Get("k")
	store.Get("missing")

	config := ratelimit.DefaultConfig()
	h := &MonitorHandler{
		Version:  "1.0.0",
		Start:    time.Now(),
		Counters: &middleware.Counters{},
		Limiter:  limiter,
		Config:   config,
		Cache:    store,
	}

	data, err := h.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/monitor", nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	monitor, ok := data.(MonitorData)
	if !ok {
		t.Fatalf("Handle() returned %T, want MonitorData", data)
	}
	if monitor.RateLimiter.ActiveKeys != 1 {
		t.Errorf("activeKeys = %d, want 1", monitor.RateLimiter.ActiveKeys)
	}
	if !monitor.RateLimiter.Enabled {
		t.Error("rate limiter reported disabled")
	}
	if monitor.Cache.Entries != 1 {
		t.Errorf("cache entries = %d, want 1", monitor.Cache.Entries)
	}
	if monitor.Cache.Hits != 1 || monitor.Cache.Misses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", monitor.Cache.Hits, monitor.Cache.Misses)
	}
	if monitor.Timestamp == "" {
		t.Error("timestamp is empty")
	}
}
