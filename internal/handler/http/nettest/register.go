package nettest

import (
	"net/http"

	"yanyucloud-api/internal/handler/http/middleware"
)

// Register wires the network test routes onto mux under the governor.
func Register(mux *http.ServeMux, g *middleware.Governor, h Handler) {
	mux.Handle("POST /network/test", g.Wrap(h.Run))
	mux.Handle("GET  /network/test", g.Wrap(h.Lookup))
}
