// Package nettest exposes the network measurement endpoints.
package nettest

import (
	"errors"
	"net/http"

	"yanyucloud-api/internal/handler/http/middleware"
	"yanyucloud-api/internal/handler/http/respond"
	ntUC "yanyucloud-api/internal/usecase/nettest"
)

// MetricsFunc records a completed test by its grade.
type MetricsFunc func(grade string)

// Handler serves the network test routes.
type Handler struct {
	Svc       *ntUC.Service
	Extractor middleware.IdentifierExtractor
	Metrics   MetricsFunc
}

// Run handles network test execution.
// @Summary      Run a network quality test
// @Description  Runs a simulated measurement; one active test per client at a time
// @Tags         network
// @Produce      json
// @Success      200 {object} respond.Envelope{data=ntUC.Result}
// @Failure      409 {object} respond.Envelope "A test is already running for this client"
// @Failure      429 {object} respond.Envelope "Rate limit exceeded"
// @Router       /network/test [post]
func (h Handler) Run(w http.ResponseWriter, r *http.Request) (any, error) {
	client := h.Extractor.Extract(r)

	result, err := h.Svc.Run(r.Context(), client)
	if err != nil {
		if errors.Is(err, ntUC.ErrTestInProgress) {
			return nil, respond.NewAPIError(http.StatusConflict, "TEST_IN_PROGRESS",
				"a network test is already running for this client")
		}
		return nil, err
	}

	if h.Metrics != nil {
		h.Metrics(result.Grade)
	}
	return result, nil
}

// Lookup handles result retrieval.
// @Summary      Fetch a stored network test result
// @Tags         network
// @Produce      json
// @Param        testId query string true "Test identifier returned by POST /network/test"
// @Success      200 {object} respond.Envelope{data=ntUC.Result}
// @Failure      400 {object} respond.Envelope "testId missing"
// @Failure      404 {object} respond.Envelope "Unknown or expired testId"
// @Router       /network/test [get]
func (h Handler) Lookup(w http.ResponseWriter, r *http.Request) (any, error) {
	result, err := h.Svc.Lookup(r.URL.Query().Get("testId"))
	if err != nil {
		switch {
		case errors.Is(err, ntUC.ErrMissingTestID):
			return nil, respond.NewAPIError(http.StatusBadRequest, "VALIDATION_ERROR",
				"testId query parameter is required")
		case errors.Is(err, ntUC.ErrTestNotFound):
			return nil, respond.NewAPIError(http.StatusNotFound, "TEST_NOT_FOUND",
				"no result for this testId; it may have expired")
		default:
			return nil, err
		}
	}
	return result, nil
}
