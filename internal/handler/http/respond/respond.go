// Package respond provides the uniform JSON response envelope returned by
// every API route, success or failure, together with the typed API error the
// governor converts into envelopes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"yanyucloud-api/internal/handler/http/requestid"
)

// Envelope is the canonical response wrapper. Exactly one of Data (with
// Success=true) or Error (with Success=false) is set for any response.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

// APIError is a domain failure carrying everything needed to build an error
// envelope: a user-facing message, an HTTP status, and a machine-readable
// code. The wrapped internal error, if any, is logged but never sent to the
// client.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable code, e.g. "DUPLICATE_SUBMISSION"
	Message string // user-facing message
	Err     error  // internal cause, logged only
}

// Error returns the internal error message when present, else the
// user-facing message, implementing the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates an APIError with the given status, code, and
// user-facing message.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// WrapAPIError creates an APIError that also carries an internal cause.
func WrapAPIError(status int, code, message string, err error) *APIError {
	return &APIError{Status: status, Code: code, Message: message, Err: err}
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// OK writes a success envelope wrapping data.
func OK(w http.ResponseWriter, r *http.Request, status int, data any) {
	JSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestid.FromContext(r.Context()),
	})
}

// Fail writes an error envelope with the given status, machine-readable
// code, and user-facing message.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, Envelope{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestid.FromContext(r.Context()),
	})
}

// Error converts any error into an error envelope. An APIError uses its own
// status, code, and user-facing message; anything else becomes a generic 500
// with no internal detail in the body. Internal causes are logged with the
// request id for support correlation either way.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := requestid.FromContext(r.Context())

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Err != nil {
			slog.Default().Error("api error",
				slog.String("request_id", reqID),
				slog.Int("status", apiErr.Status),
				slog.String("code", apiErr.Code),
				slog.String("error", SanitizeError(apiErr.Err)))
		}
		Fail(w, r, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("request_id", reqID),
		slog.String("error", SanitizeError(err)))
	Fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
