package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fitness-league/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// tracedSpanPrefixes lists the spans worth exporting: handlers and the auth
// steps that verify tokens and resolve athlete profiles.
var tracedSpanPrefixes = []string{
	"httpapi.Handler.",
	"httpapi.RequireAuth",
	"httpapi.RequireIdentity",
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	// Requests filtered out of tracing (health and metrics) carry no parent.
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	for _, prefix := range tracedSpanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
