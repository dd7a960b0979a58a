package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("nfl-trends-api/internal/usecase")

// startUsecaseSpan only opens a span under an existing trace, so warm-up and
// tests without a request span stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// failSpan records err on span and returns it unchanged.
func failSpan(span trace.Span, err error) error {
	if err == nil || !span.IsRecording() {
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
