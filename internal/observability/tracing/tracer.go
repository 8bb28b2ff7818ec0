// Package tracing provides OpenTelemetry tracing for the HTTP surface and
// the aggregation pipeline.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the marketpulse application.
var tracer = otel.Tracer("marketpulse")

// GetTracer returns the global tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "aggregate")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
