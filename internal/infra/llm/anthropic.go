package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"yanyucloud-api/internal/resilience/circuitbreaker"
	"yanyucloud-api/internal/resilience/retry"
	"yanyucloud-api/internal/usecase/chat"
)

var defaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Anthropic relays chat completions to the Anthropic Messages API.
type Anthropic struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          string
	maxTokens      int
	timeout        time.Duration
}

// NewAnthropic creates the provider with retry and circuit breaker wired in.
func NewAnthropic(apiKey string, cfg Config) *Anthropic {
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	slog.Info("initialized anthropic chat provider",
		slog.String("model", model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Anthropic{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMAPIConfig("anthropic")),
		retryConfig:    retry.LLMAPIConfig(),
		model:          model,
		maxTokens:      cfg.MaxTokens,
		timeout:        cfg.Timeout,
	}
}

// Name implements chat.Provider.
func (a *Anthropic) Name() string { return "anthropic" }

// Complete relays the conversation through retry and circuit breaker.
func (a *Anthropic) Complete(ctx context.Context, req *chat.Request) (*chat.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var reply *chat.Reply
	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.doComplete(ctx, req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("anthropic circuit breaker open, request rejected")
				return fmt.Errorf("%w: circuit breaker open", chat.ErrProviderUnavailable)
			}
			return err
		}
		reply = cbResult.(*chat.Reply)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("anthropic completion failed: %w", retryErr)
	}
	return reply, nil
}

func (a *Anthropic) doComplete(ctx context.Context, req *chat.Request) (*chat.Reply, error) {
	model := a.model
	if req.Model != "" {
		model = req.Model
	}

	// The Messages API takes system text separately from the turn list.
	var systemParts []string
	var messages []anthropic.MessageParam
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			systemParts = append(systemParts, msg.Content)
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(a.maxTokens),
		Messages:  messages,
	}
	if len(systemParts) > 0 {
		params.System = []anthropic.TextBlockParam{
			{Text: strings.Join(systemParts, "\n")},
		}
	}

	start := time.Now()
	message, err := a.client.Messages.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "anthropic completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}
	if len(message.Content) == 0 {
		return nil, fmt.Errorf("anthropic api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return nil, fmt.Errorf("anthropic api returned unexpected content type")
	}

	slog.InfoContext(ctx, "anthropic completion succeeded",
		slog.String("model", string(message.Model)),
		slog.Duration("duration", duration),
		slog.Int64("input_tokens", message.Usage.InputTokens),
		slog.Int64("output_tokens", message.Usage.OutputTokens))

	return &chat.Reply{
		Reply: textBlock.Text,
		Model: string(message.Model),
		Usage: chat.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}
