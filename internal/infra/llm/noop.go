package llm

import (
	"context"

	"yanyucloud-api/internal/usecase/chat"
)

// Noop is the provider used when no API key is configured. It answers every
// conversation with a fixed notice so the route stays exercisable in
// development.
type Noop struct{}

// NewNoop creates a Noop provider.
func NewNoop() *Noop {
	return &Noop{}
}

// Name implements chat.Provider.
func (n *Noop) Name() string { return "noop" }

// Complete returns a canned reply without calling any external service.
func (n *Noop) Complete(_ context.Context, req *chat.Request) (*chat.Reply, error) {
	return &chat.Reply{
		Reply: "chat is not configured on this deployment",
		Model: "noop",
		Usage: chat.Usage{PromptTokens: len(req.Messages)},
	}, nil
}
