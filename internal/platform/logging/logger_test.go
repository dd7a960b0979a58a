package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesFieldsAndMirrors(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	var mirrored []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		mirrored = append(mirrored, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped")
	logger.InfoContext(context.Background(), "cache warmed", "region", "weekly_trends", "entries", 3)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["region"] != "weekly_trends" || fields["entries"] != int64(3) {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if len(mirrored) != 1 || mirrored[0] != "info:cache warmed" {
		t.Fatalf("unexpected mirrored records: %v", mirrored)
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("nothing happens")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync on nil logger: %v", err)
	}
}

func TestLogger_ContextFieldsAndBoundMirrorArgs(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).With("component", "cache")

	var mirroredArgs []any
	SetMirror(func(_ context.Context, _ Level, _ string, args ...any) {
		mirroredArgs = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	ctx := ContextWith(context.Background(), "request_id", "req_1")
	ctx = ContextWith(ctx, "request_id", "req_2")
	logger.WarnContext(ctx, "cache region over capacity", "region", "weekly_trends")

	fields := logs.All()[0].ContextMap()
	if fields["component"] != "cache" || fields["region"] != "weekly_trends" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields["request_id"] != "req_2" {
		t.Fatalf("expected latest request_id, got %v", fields["request_id"])
	}
	if got, ok := ContextValue(ctx, "request_id"); !ok || got != "req_2" {
		t.Fatalf("ContextValue=%v,%v", got, ok)
	}
	if len(mirroredArgs) != 8 || mirroredArgs[0] != "component" {
		t.Fatalf("expected bound, context and call args mirrored, got %v", mirroredArgs)
	}
}

func TestContextWith_NoArgs(t *testing.T) {
	ctx := context.Background()
	if ContextWith(ctx) != ctx {
		t.Fatalf("expected context unchanged without args")
	}
	if _, ok := ContextValue(ctx, "request_id"); ok {
		t.Fatalf("expected no value on bare context")
	}
}
