// Package tracing wires OpenTelemetry into the HTTP layer. Incoming W3C
// trace context is honored, every request gets a server span, and the trace
// ID is echoed back to callers for correlation.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("yanyucloud-api")

// Tracer returns the service tracer for creating spans.
func Tracer() trace.Tracer {
	return tracer
}
