package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("nfl-trends-api/internal/interfaces/httpapi")

// startSpan opens a child span for handler entry points. Helpers and
// middleware get a no-op span and write onto the handler span through
// annotateResponse instead.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// annotateResponse tags the active span with the response status. Server
// errors also mark the span failed.
func annotateResponse(ctx context.Context, status int, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.SetAttributes(attribute.String("error.type", http.StatusText(status)))
	}
	if status >= http.StatusInternalServerError {
		if err != nil {
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
