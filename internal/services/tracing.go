// Package services implements the multi-step operations behind the HTTP
// handlers: sign-in, registration steps, profile and product updates that
// touch both the database and asset storage, and order placement.
//
// Services return *apierr.Error values for client-facing failures and raw
// errors for faults; the HTTP edge normalizes both through apierr.From.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry the shop, product and user identifiers where applicable.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func startSpan(ctx context.Context, service, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("services/"+service).Start(ctx, op, trace.WithAttributes(attrs...))
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
