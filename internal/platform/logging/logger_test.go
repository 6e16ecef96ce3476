package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return newLogger(zap.New(core)), logs
}

func TestWithFields_AccumulatesOnContextCalls(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(LevelInfo)
	ctx := WithFields(context.Background(), "user_id", "user-1")
	ctx = WithFields(ctx, "actor_id", "a1")

	logger.WarnContext(ctx, "log own score failed", "workout_id", "w1", "error", errors.New("boom"))
	logger.Warn("plain", "workout_id", "w2")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	got := entries[0].ContextMap()
	if got["user_id"] != "user-1" || got["actor_id"] != "a1" || got["workout_id"] != "w1" || got["error"] != "boom" {
		t.Fatalf("unexpected context fields: %v", got)
	}
	if _, ok := entries[1].ContextMap()["user_id"]; ok {
		t.Fatalf("non-context call must not carry scoped fields: %v", entries[1].ContextMap())
	}
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(LevelInfo)
	parent := WithFields(context.Background(), "user_id", "user-1")
	_ = WithFields(parent, "actor_id", "a1")

	logger.InfoContext(parent, "request")

	got := logs.All()[0].ContextMap()
	if _, ok := got["actor_id"]; ok {
		t.Fatalf("child fields leaked into parent context: %v", got)
	}
}

func TestLogger_LevelAndServiceFields(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(LevelWarn)
	svc := logger.ForService("fitness-league", "v1", "dev")

	svc.Info("dropped")
	svc.Error("kept", "count", 2)

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	got := entries[0].ContextMap()
	if got["service"] != "fitness-league" || got["version"] != "v1" || got["env"] != "dev" || got["count"] != int64(2) {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync on nil logger: %v", err)
	}
}
