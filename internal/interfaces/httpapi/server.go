package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fitness-league/internal/platform/logging"
)

// MetricsExporter exposes request metrics and their scrape endpoint.
type MetricsExporter interface {
	RequestObserver
	Handler() http.Handler
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	metrics MetricsExporter,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metrics)
	registerOnboardingRoutes(mux, handler, verifier)
	registerAthleteRoutes(mux, handler, verifier)
	registerCompetitionRoutes(mux, handler, verifier)
	registerPointRoutes(mux, handler, verifier)
	registerLeaderboardRoutes(mux, handler, verifier)

	var observer RequestObserver
	if metrics != nil {
		observer = metrics
	}

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, RequestMetrics(observer, mux)))))
}
