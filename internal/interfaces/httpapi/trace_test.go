package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"httpapi.Handler.LogMyScore":   true,
		"httpapi.Handler.GetDashboard": true,
		"httpapi.RequireAuth":          true,
		"httpapi.RequireIdentity":      true,
		"httpapi.RequestLogging":       false,
		"httpapi.writeError":           false,
		"usecase.ScoreService.Log":     false,
	}

	for name, want := range tests {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gotCtx, span := startSpan(ctx, "httpapi.Handler.ListWorkouts")
	if gotCtx != ctx {
		t.Fatal("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected a no-op span when no parent span exists")
	}
}
