package chat

import (
	"net/http"

	"yanyucloud-api/internal/handler/http/middleware"
)

// Register wires the chat route onto mux under the governor. Chat calls are
// expensive upstream, so the route carries its own tighter limit.
func Register(mux *http.ServeMux, g *middleware.Governor, h Handler, limit int) {
	mux.Handle("POST /chat", g.Wrap(h.Complete, middleware.WithLimit(limit)))
}
