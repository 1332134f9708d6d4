// Package config provides environment-variable configuration helpers shared
// by the API binary. All loaders fall back to a default value and log a
// warning rather than failing, except where a loader documents fail-closed
// behavior.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable, or defaultValue
// if the variable is unset or empty.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable parsed as an
// integer. Unset, empty, or unparsable values return defaultValue; a parse
// failure additionally logs a warning.
func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return n
}

// GetEnvFloat returns the value of an environment variable parsed as a
// float64. Invalid values return defaultValue with a warning.
func GetEnvFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Float64("default", defaultValue))
		return defaultValue
	}
	return f
}

// GetEnvBool returns the value of an environment variable parsed as a
// boolean. Accepted values are those of strconv.ParseBool ("1", "t", "true",
// "0", "f", "false" in any case). Invalid values return defaultValue with a
// warning.
func GetEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
	return b
}

// GetEnvDuration returns the value of an environment variable parsed with
// time.ParseDuration (e.g. "30s", "5m", "1h30m"). Invalid values return
// defaultValue with a warning.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.String("default", defaultValue.String()))
		return defaultValue
	}
	return d
}

// GetEnvStringList returns a comma-separated list from an environment
// variable. Entries are trimmed and empty entries dropped; an unset variable
// or a list with no usable entries returns defaultValue.
func GetEnvStringList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
