package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yanyucloud-api/internal/handler/http/respond"
	chatUC "yanyucloud-api/internal/usecase/chat"
)

type stubProvider struct {
	reply *chatUC.Reply
	err   error
}

func (stubProvider) Name() string { return "stub" }

func (p stubProvider) Complete(context.Context, *chatUC.Request) (*chatUC.Reply, error) {
	return p.reply, p.err
}

func newHandler(p chatUC.Provider) Handler {
	return Handler{Svc: &chatUC.Service{Provider: p}}
}

func chatBody(content string) *strings.Reader {
	return strings.NewReader(`{"messages":[{"role":"user","content":"` + content + `"}]}`)
}

func TestCompleteSuccess(t *testing.T) {
	want := &chatUC.Reply{Reply: "hello back", Model: "stub-1"}
	h := newHandler(stubProvider{reply: want})

	var gotProvider string
	h.Metrics = func(provider string, err error, _ time.Duration) {
		gotProvider = provider
		if err != nil {
			t.Errorf("metrics err = %v, want nil", err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", chatBody("hi"))
	data, err := h.Complete(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if data.(*chatUC.Reply).Reply != "hello back" {
		t.Errorf("reply = %v, want %v", data, want)
	}
	if gotProvider != "stub" {
		t.Errorf("metrics provider = %q, want stub", gotProvider)
	}
}

func TestCompleteInvalidJSON(t *testing.T) {
	h := newHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	_, err := h.Complete(httptest.NewRecorder(), req)
	apiErr := requireAPIError(t, err)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
}

func TestCompleteValidationFailure(t *testing.T) {
	h := newHandler(stubProvider{})
	metricsCalled := false
	h.Metrics = func(string, error, time.Duration) { metricsCalled = true }

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"messages":[]}`))
	_, err := h.Complete(httptest.NewRecorder(), req)
	apiErr := requireAPIError(t, err)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
	if metricsCalled {
		t.Error("metrics recorded for a request that never reached the provider")
	}
}

func TestCompleteProviderUnavailable(t *testing.T) {
	h := newHandler(stubProvider{err: chatUC.ErrProviderUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/chat", chatBody("hi"))
	_, err := h.Complete(httptest.NewRecorder(), req)
	apiErr := requireAPIError(t, err)
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", apiErr.Status)
	}
}

func requireAPIError(t *testing.T, err error) *respond.APIError {
	t.Helper()
	if err == nil {
		t.Fatal("error = nil, want *respond.APIError")
	}
	apiErr, ok := err.(*respond.APIError)
	if !ok {
		t.Fatalf("error = %T (%v), want *respond.APIError", err, err)
	}
	return apiErr
}
