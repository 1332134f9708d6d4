package feedback

import (
	"net/http"

	"yanyucloud-api/internal/handler/http/middleware"
)

// Register wires the feedback routes onto mux under the governor.
func Register(mux *http.ServeMux, g *middleware.Governor, h Handler) {
	mux.Handle("POST /feedback", g.Wrap(h.Submit, middleware.WithStatus(http.StatusCreated)))
	mux.Handle("GET  /feedback", g.Wrap(h.Probe))
}
