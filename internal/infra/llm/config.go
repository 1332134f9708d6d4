// Package llm provides chat.Provider implementations backed by hosted LLM
// APIs (OpenAI-compatible and Anthropic), plus a noop provider used when no
// key is configured. All providers wrap their calls in retry with backoff
// and a circuit breaker.
package llm

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"yanyucloud-api/pkg/config"
)

// Config selects and tunes the chat provider.
type Config struct {
	// Provider is "openai", "anthropic", or "noop".
	Provider string

	// Model overrides the provider's default model when non-empty.
	Model string

	// MaxTokens bounds the completion length.
	MaxTokens int

	// Timeout is the per-call deadline.
	Timeout time.Duration
}

// LoadConfig reads CHAT_PROVIDER, CHAT_MODEL, CHAT_MAX_TOKENS, and
// CHAT_TIMEOUT. Unknown providers fail closed so a typo cannot silently
// disable the chat surface.
func LoadConfig() (Config, error) {
	cfg := Config{
		Provider:  config.GetEnvString("CHAT_PROVIDER", "noop"),
		Model:     config.GetEnvString("CHAT_MODEL", ""),
		MaxTokens: config.GetEnvInt("CHAT_MAX_TOKENS", 1024),
		Timeout:   config.GetEnvDuration("CHAT_TIMEOUT", 60*time.Second),
	}

	switch cfg.Provider {
	case "openai", "anthropic", "noop":
	default:
		return Config{}, fmt.Errorf("unknown CHAT_PROVIDER %q: must be openai, anthropic, or noop", cfg.Provider)
	}
	if cfg.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("CHAT_MAX_TOKENS must be positive, got %d", cfg.MaxTokens)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("CHAT_TIMEOUT must be positive, got %v", cfg.Timeout)
	}
	return cfg, nil
}

// apiKeyFor returns the key env var value for a provider.
func apiKeyFor(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}

func warnMissingKey(provider string) {
	slog.Warn("chat provider configured but API key missing, using noop",
		slog.String("provider", provider))
}
