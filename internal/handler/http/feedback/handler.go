// Package feedback exposes the feedback submission endpoints.
package feedback

import (
	"encoding/json"
	"errors"
	"net/http"

	"yanyucloud-api/internal/handler/http/respond"
	fbUC "yanyucloud-api/internal/usecase/feedback"
)

// MetricsFunc records a submission outcome, decoupling the handler from the
// metrics registry.
type MetricsFunc func(status string)

// Handler serves the feedback routes.
type Handler struct {
	Svc     *fbUC.Service
	Metrics MetricsFunc
}

// Submit handles feedback submission.
// @Summary      Submit feedback
// @Description  Validates and records user feedback, relaying it to the configured channel
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        feedback body fbUC.Submission true "Feedback submission"
// @Success      201 {object} respond.Envelope{data=fbUC.Result}
// @Failure      400 {object} respond.Envelope "Validation failed, all violations listed"
// @Failure      409 {object} respond.Envelope "Duplicate submission within the dedup window"
// @Failure      429 {object} respond.Envelope "Rate limit exceeded"
// @Router       /feedback [post]
func (h Handler) Submit(w http.ResponseWriter, r *http.Request) (any, error) {
	var sub fbUC.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return nil, respond.WrapAPIError(http.StatusBadRequest, "VALIDATION_ERROR",
			"request body must be valid JSON", err)
	}

	result, err := h.Svc.Submit(r.Context(), &sub)
	if err != nil {
		h.record("rejected")
		var verr *fbUC.ValidationError
		switch {
		case errors.As(err, &verr):
			return nil, respond.NewAPIError(http.StatusBadRequest, "VALIDATION_ERROR", verr.Error())
		case errors.Is(err, fbUC.ErrDuplicateSubmission):
			return nil, respond.NewAPIError(http.StatusConflict, "DUPLICATE_SUBMISSION",
				"this feedback was already submitted recently")
		default:
			return nil, err
		}
	}

	h.record(result.Status)
	return result, nil
}

// Probe handles the feedback service probe.
// @Summary      Feedback service probe
// @Tags         feedback
// @Produce      json
// @Success      200 {object} respond.Envelope
// @Router       /feedback [get]
func (h Handler) Probe(http.ResponseWriter, *http.Request) (any, error) {
	return map[string]string{
		"service": "feedback",
		"status":  "operational",
	}, nil
}

func (h Handler) record(status string) {
	if h.Metrics != nil {
		h.Metrics(status)
	}
}
