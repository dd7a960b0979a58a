package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
)

func TestIsQuietRequestLog(t *testing.T) {
	if !isQuietRequestLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check request log to be skipped")
	}
	if !isQuietRequestLog("http request", []any{"path", "/openapi.yaml"}) {
		t.Fatalf("expected openapi request log to be skipped")
	}
	if isQuietRequestLog("http request", []any{"path", "/api/v1/weekly-trends"}) {
		t.Fatalf("did not expect api request log to be skipped")
	}
	if isQuietRequestLog("weekly trends cache cleared", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non request log to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"table", "phidal", "workers", 4, 7, "orphan", "payload"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "table" || attrs[0].Value.AsString() != "phidal" {
		t.Fatalf("unexpected table attribute")
	}
	if attrs[1].Key != "workers" || attrs[1].Value.AsInt64() != 4 {
		t.Fatalf("unexpected workers attribute")
	}
	if attrs[2].Key != "arg_2" || attrs[2].Value.AsString() != "orphan" {
		t.Fatalf("unexpected non-string key attribute: %s", attrs[2].Key)
	}
	if attrs[3].Key != "payload" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}

	attrs = buildOTelLogAttributes([]any{"request_id", "req_a", "route", "/api/v1/games", "request_id", "req_b"})
	if len(attrs) != 2 || attrs[0].Key != "request_id" || attrs[0].Value.AsString() != "req_b" {
		t.Fatalf("expected deduplicated request_id with last value, got %+v", attrs)
	}
}

func TestToOTelLogValue(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"wins":           11,
		"win_percentage": 57.9,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 || items[0].Key != "win_percentage" {
		t.Fatalf("unexpected map items: %+v", items)
	}

	if got := toOTelLogValue(uint16(7), 0); got.AsInt64() != 7 {
		t.Fatalf("unexpected uint value: %v", got)
	}
	if got := toOTelLogValue(errors.New("boom"), 0); got.AsString() != "boom" {
		t.Fatalf("unexpected error value: %v", got)
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0); got.AsString() != "1.5s" {
		t.Fatalf("unexpected duration value: %v", got)
	}
	if got := toOTelLogValue([]string{"KC", "BUF"}, 0); got.Kind() != otellog.KindSlice || len(got.AsSlice()) != 2 {
		t.Fatalf("unexpected slice value: %v", got)
	}
	var missing *int
	if got := toOTelLogValue(missing, 0); got.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", got.Kind())
	}
}
