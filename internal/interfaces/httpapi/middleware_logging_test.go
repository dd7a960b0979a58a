package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/nfl-trends-api/internal/platform/id"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixedID string

func (f fixedID) NewID() (string, error) { return string(f), nil }

var _ id.Generator = fixedID("")

func TestRequestLogging_RecordsStatusAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestID(fixedID("req-1"), RequestLogging(logger, next))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trends", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("expected status 418, got %v", fields["status"])
	}
	if fields["request_id"] != "req-1" {
		t.Fatalf("expected request_id req-1, got %v", fields["request_id"])
	}
	if fields["client_ip"] != "203.0.113.7" {
		t.Fatalf("expected first forwarded ip, got %v", fields["client_ip"])
	}
}

func TestRequestLogging_ServerErrorsLogAtError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeInternalError(r.Context(), w)
	})
	RequestLogging(logger, next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error level entry, got %+v", entries)
	}
}
