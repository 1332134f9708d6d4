// Package requestid generates and propagates per-request identifiers.
package requestid

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey struct{}

// Header is the response header carrying the request id.
const Header = "X-Request-ID"

// New returns a fresh request id of the form req-<unix-millis>-<suffix>,
// sortable by creation time with a random suffix for uniqueness within the
// same millisecond.
func New() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("req-%d-%s", time.Now().UnixMilli(), suffix)
}

// NewContext returns a context carrying the request id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "" if none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware assigns a request id to each incoming request, stores it in the
// request context, and echoes it in the X-Request-ID response header. An id
// already present on the incoming request is reused so upstream proxies can
// correlate.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = New()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}
