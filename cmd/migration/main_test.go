package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/riskibarqy/nfl-trends-api/db/migrations"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default 1 step, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for steps %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1772409602"); err != nil || got != 1772409602 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if got, err := parseVersion("-1"); err != nil || got != -1 {
		t.Fatalf("expected -1 to reset version, got %d err=%v", got, err)
	}
	if _, err := parseVersion("-5"); err == nil {
		t.Fatalf("expected error for version below -1")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/nfl_trends?sslmode=disable", true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag appended, got %q", got)
	}
	dsn := "host=localhost dbname=nfl_trends"
	if got := normalizeDBURL(dsn, true); got != dsn {
		t.Fatalf("expected key/value dsn unchanged, got %q", got)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		t.Fatalf("list embedded migrations: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	pairs := make(map[string]int)
	for _, name := range files {
		version, _, _ := strings.Cut(name, "_")
		pairs[version]++
	}
	for version, n := range pairs {
		if n != 2 {
			t.Fatalf("migration %s has %d files, want up and down", version, n)
		}
	}
}
