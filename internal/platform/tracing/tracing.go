// Package tracing wraps the OpenTelemetry tracer used around workflow
// transitions. Without a configured provider the global no-op tracer is used.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "legatia/pkg/domain-errors"
)

const instrumentation = "legatia"

// Start opens a span named op carrying attrs.
func Start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, op, trace.WithAttributes(attrs...))
}

// End records err on span and closes it. Client-caused failures keep the
// span status unset and only tag the error code.
func End(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	code := dErrors.CodeOf(err)
	span.SetAttributes(attribute.String("error.code", string(code)))
	if code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
