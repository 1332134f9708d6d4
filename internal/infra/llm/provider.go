package llm

import (
	"log/slog"

	"yanyucloud-api/internal/usecase/chat"
)

// NewProvider builds the provider cfg names. When the selected provider's
// API key is missing the service falls back to noop with a warning rather
// than refusing to start: the chat surface degrades, everything else keeps
// working.
func NewProvider(cfg Config) chat.Provider {
	switch cfg.Provider {
	case "openai":
		key := apiKeyFor("openai")
		if key == "" {
			warnMissingKey("openai")
			return NewNoop()
		}
		return NewOpenAI(key, cfg)
	case "anthropic":
		key := apiKeyFor("anthropic")
		if key == "" {
			warnMissingKey("anthropic")
			return NewNoop()
		}
		return NewAnthropic(key, cfg)
	default:
		slog.Info("chat provider set to noop")
		return NewNoop()
	}
}
