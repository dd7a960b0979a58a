package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/nfl-trends-api/internal/config"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	if srv := StartPprofServer(config.Config{}, logging.NewNop()); srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(context.Background(), nil, nil); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}
}
