// Package chat exposes the chat completion endpoint.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"yanyucloud-api/internal/handler/http/respond"
	chatUC "yanyucloud-api/internal/usecase/chat"
)

// MetricsFunc records a completion attempt against a provider.
type MetricsFunc func(provider string, err error, duration time.Duration)

// Handler serves the chat route.
type Handler struct {
	Svc     *chatUC.Service
	Metrics MetricsFunc
}

// Complete handles a chat completion request.
// @Summary      Run a chat completion
// @Description  Forwards the conversation to the configured model provider
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body chatUC.Request true "Conversation and optional model override"
// @Success      200 {object} respond.Envelope{data=chatUC.Reply}
// @Failure      400 {object} respond.Envelope "Malformed body or invalid messages"
// @Failure      429 {object} respond.Envelope "Rate limit exceeded"
// @Failure      503 {object} respond.Envelope "Provider unavailable"
// @Router       /chat [post]
func (h Handler) Complete(w http.ResponseWriter, r *http.Request) (any, error) {
	var req chatUC.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, respond.WrapAPIError(http.StatusBadRequest, "VALIDATION_ERROR",
			"request body must be valid JSON", err)
	}

	start := time.Now()
	reply, err := h.Svc.Complete(r.Context(), &req)

	var vErr *chatUC.ValidationError
	if h.Metrics != nil && !errors.As(err, &vErr) {
		h.Metrics(h.Svc.Provider.Name(), err, time.Since(start))
	}
	if err != nil {
		switch {
		case errors.As(err, &vErr):
			return nil, respond.NewAPIError(http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error())
		case errors.Is(err, chatUC.ErrProviderUnavailable):
			return nil, respond.WrapAPIError(http.StatusServiceUnavailable, "INTERNAL_ERROR",
				"chat provider is temporarily unavailable", err)
		default:
			return nil, err
		}
	}
	return reply, nil
}
