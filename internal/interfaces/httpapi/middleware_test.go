package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{name: "listed origin", allowed: []string{"https://nfl-trends.example.com"}, method: http.MethodPost, origin: "https://nfl-trends.example.com", wantStatus: http.StatusOK, wantOrigin: "https://nfl-trends.example.com", wantVary: true},
		{name: "trailing slash in config", allowed: []string{" https://nfl-trends.example.com/ "}, method: http.MethodGet, origin: "https://nfl-trends.example.com", wantStatus: http.StatusOK, wantOrigin: "https://nfl-trends.example.com", wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://any.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unlisted origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodPost, origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/weekly-trends", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("Vary Origin=%v want=%v", got, tt.wantVary)
			}
			if tt.wantOrigin != "" && !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), requestIDHeader) {
				t.Fatalf("expected %s in allowed headers", requestIDHeader)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		want     string
	}{
		{name: "keeps caller id", incoming: "abc-123", want: "abc-123"},
		{name: "generates when missing", want: "generated"},
		{name: "replaces malformed id", incoming: "bad id\r\n", want: "generated"},
		{name: "replaces oversized id", incoming: strings.Repeat("x", 200), want: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen any
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen, _ = logging.ContextValue(r.Context(), "request_id")
			})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/games/NYJNE20240919", nil)
			if tt.incoming != "" {
				req.Header.Set(requestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			RequestID(fixedID("generated"), next).ServeHTTP(rec, req)

			if got := rec.Header().Get(requestIDHeader); got != tt.want {
				t.Fatalf("response header=%q want=%q", got, tt.want)
			}
			if seen != tt.want {
				t.Fatalf("log context request_id=%v want=%q", seen, tt.want)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/readyz", want: false},
		{path: "/docs", want: false},
		{path: "/openapi.yaml", want: false},
		{path: "/api/v1/games", want: true},
		{path: "/api/v1/game-trends/phidal20250904", want: true},
		{path: "/", want: true},
	}
	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestRecoverPanic(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil).WithContext(context.Background())

	recoverPanic(logging.NewNop(), next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}
