package ratelimit

import (
	"fmt"
	"time"

	"yanyucloud-api/pkg/config"
)

// Config holds rate limiting configuration loaded from the environment.
type Config struct {
	// Enabled controls whether rate limiting is active at all.
	Enabled bool

	// Limit is the default per-identifier request budget within Window.
	Limit int

	// Window is the fixed window duration.
	Window time.Duration

	// ChatLimit is the stricter per-identifier budget for the chat proxy,
	// whose upstream calls are metered and expensive.
	ChatLimit int

	// CleanupInterval is how often the background sweep removes stale
	// records.
	CleanupInterval time.Duration
}

// DefaultConfig returns the built-in defaults: 100 requests per 60 seconds,
// 10 chat requests per window, sweep every 5 minutes.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Limit:           100,
		Window:          60 * time.Second,
		ChatLimit:       10,
		CleanupInterval: 5 * time.Minute,
	}
}

// LoadConfig loads rate limiting configuration from environment variables:
//
//   - RATE_LIMIT_ENABLED: enable rate limiting (default: true)
//   - RATE_LIMIT_REQUESTS: per-client budget per window (default: 100)
//   - RATE_LIMIT_WINDOW: window duration (default: 60s)
//   - RATE_LIMIT_CHAT_REQUESTS: per-client chat budget (default: 10)
//   - RATE_LIMIT_CLEANUP_INTERVAL: background sweep interval (default: 5m)
//
// Invalid values fail closed: the server should refuse to start rather than
// run with a misconfigured limiter.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.Enabled = config.GetEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.Limit = config.GetEnvInt("RATE_LIMIT_REQUESTS", cfg.Limit)
	cfg.Window = config.GetEnvDuration("RATE_LIMIT_WINDOW", cfg.Window)
	cfg.ChatLimit = config.GetEnvInt("RATE_LIMIT_CHAT_REQUESTS", cfg.ChatLimit)
	cfg.CleanupInterval = config.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)

	if cfg.Limit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.Limit)
	}
	if cfg.Window <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", cfg.Window)
	}
	if cfg.ChatLimit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_CHAT_REQUESTS must be positive, got %d", cfg.ChatLimit)
	}
	if cfg.CleanupInterval <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_CLEANUP_INTERVAL must be positive, got %v", cfg.CleanupInterval)
	}

	return cfg, nil
}
