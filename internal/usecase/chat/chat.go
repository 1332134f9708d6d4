// Package chat implements the chat proxy use case: validating conversations
// and relaying them to a hosted LLM provider.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a chat completion request.
type Request struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model,omitempty"`
}

// Usage reports token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Reply is a completed chat response.
type Reply struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Provider relays a validated conversation to a hosted LLM. Implementations
// carry their own retry and circuit breaker policies.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Complete relays the conversation and returns the assistant reply.
	Complete(ctx context.Context, req *Request) (*Reply, error)
}

// ErrProviderUnavailable indicates the provider rejected the call before it
// was attempted, such as when its circuit breaker is open.
var ErrProviderUnavailable = errors.New("chat provider unavailable")

// ValidationError aggregates every violation in one request.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid chat request: " + strings.Join(e.Violations, "; ")
}

const (
	maxMessages   = 50
	maxContentLen = 8000
)

var validRoles = map[string]bool{
	"system":    true,
	"user":      true,
	"assistant": true,
}

// Service validates conversations and delegates to the configured provider.
type Service struct {
	Provider Provider
}

// Complete validates req, then relays it. Returns *ValidationError for bad
// input; provider failures pass through wrapped.
func (s *Service) Complete(ctx context.Context, req *Request) (*Reply, error) {
	if verr := validate(req); verr != nil {
		return nil, verr
	}

	reply, err := s.Provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion via %s: %w", s.Provider.Name(), err)
	}
	return reply, nil
}

func validate(req *Request) *ValidationError {
	var violations []string

	if len(req.Messages) == 0 {
		violations = append(violations, "messages must not be empty")
	}
	if len(req.Messages) > maxMessages {
		violations = append(violations, fmt.Sprintf("at most %d messages allowed", maxMessages))
	}
	for i, msg := range req.Messages {
		if !validRoles[msg.Role] {
			violations = append(violations, fmt.Sprintf("messages[%d]: role must be one of system, user, assistant", i))
		}
		if strings.TrimSpace(msg.Content) == "" {
			violations = append(violations, fmt.Sprintf("messages[%d]: content is required", i))
		} else if len(msg.Content) > maxContentLen {
			violations = append(violations, fmt.Sprintf("messages[%d]: content must be at most %d characters", i, maxContentLen))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
