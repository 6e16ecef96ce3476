package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected metrics status %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	return string(body)
}

func TestMetrics_CountersAndHandler(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveGrants(points.GrantModeAppend, 6)
	m.ObserveGrants(points.GrantModeOnce, 1)
	m.ObserveGrants(points.GrantModeOnce, 0)
	m.ObserveScore(true, false)
	m.ObserveScore(false, true)
	m.ObserveHTTP(http.MethodGet, "GET /v1/dashboard", http.StatusOK, 15*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	for _, want := range []string{
		`fitness_league_point_grants_total{mode="append"} 6`,
		`fitness_league_point_grants_total{mode="once"} 1`,
		`fitness_league_score_submissions_total{actor="self",outcome="created"} 1`,
		`fitness_league_score_submissions_total{actor="admin",outcome="updated"} 1`,
		`fitness_league_http_requests_total{method="GET",route="GET /v1/dashboard",status="200"} 1`,
		`fitness_league_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition:\n%s", want, body)
		}
	}
}
