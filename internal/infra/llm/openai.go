package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"yanyucloud-api/internal/resilience/circuitbreaker"
	"yanyucloud-api/internal/resilience/retry"
	"yanyucloud-api/internal/usecase/chat"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI relays chat completions to an OpenAI-compatible API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          string
	maxTokens      int
	timeout        time.Duration
}

// NewOpenAI creates the provider with retry and circuit breaker wired in.
func NewOpenAI(apiKey string, cfg Config) *OpenAI {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	slog.Info("initialized openai chat provider",
		slog.String("model", model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMAPIConfig("openai")),
		retryConfig:    retry.LLMAPIConfig(),
		model:          model,
		maxTokens:      cfg.MaxTokens,
		timeout:        cfg.Timeout,
	}
}

// Name implements chat.Provider.
func (o *OpenAI) Name() string { return "openai" }

// Complete relays the conversation through retry and circuit breaker.
func (o *OpenAI) Complete(ctx context.Context, req *chat.Request) (*chat.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var reply *chat.Reply
	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai circuit breaker open, request rejected")
				return fmt.Errorf("%w: circuit breaker open", chat.ErrProviderUnavailable)
			}
			return err
		}
		reply = cbResult.(*chat.Reply)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("openai completion failed: %w", retryErr)
	}
	return reply, nil
}

func (o *OpenAI) doComplete(ctx context.Context, req *chat.Request) (*chat.Reply, error) {
	model := o.model
	if req.Model != "" {
		model = req.Model
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: o.maxTokens,
		Messages:  messages,
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "openai completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned no choices")
	}

	slog.InfoContext(ctx, "openai completion succeeded",
		slog.String("model", resp.Model),
		slog.Duration("duration", duration),
		slog.Int("total_tokens", resp.Usage.TotalTokens))

	return &chat.Reply{
		Reply: resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: chat.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
