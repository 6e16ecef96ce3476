package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics MetricsExporter) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics.Handler())
}

// authed requires a valid bearer token only.
func authed(verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, fn)
}

// member requires a bearer token linked to a claimed athlete profile.
func member(verifier TokenVerifier, handler *Handler, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequireIdentity(handler.identityService, fn))
}

func registerOnboardingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/onboarding/athletes", authed(verifier, handler.ListUnassignedAthletes))
	mux.Handle("POST /v1/onboarding/claim", authed(verifier, handler.ClaimAthlete))
}

func registerAthleteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", member(verifier, handler, handler.GetMe))
	mux.Handle("PUT /v1/me", member(verifier, handler, handler.UpdateMe))
	mux.Handle("GET /v1/athletes", member(verifier, handler, handler.ListAthletes))
	mux.Handle("POST /v1/athletes", member(verifier, handler, handler.SeedAthletes))
	mux.Handle("PUT /v1/athletes/{athleteID}/role", member(verifier, handler, handler.SetAthleteRole))
	mux.Handle("PUT /v1/athletes/{athleteID}/team", member(verifier, handler, handler.AssignAthleteTeam))
	mux.Handle("GET /v1/teams", member(verifier, handler, handler.ListTeams))
	mux.Handle("POST /v1/teams", member(verifier, handler, handler.CreateTeam))
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/workouts", member(verifier, handler, handler.ListWorkouts))
	mux.Handle("POST /v1/workouts", member(verifier, handler, handler.CreateWorkout))
	mux.Handle("GET /v1/workouts/{workoutID}", member(verifier, handler, handler.GetWorkout))
	mux.Handle("GET /v1/workouts/{workoutID}/score", member(verifier, handler, handler.GetMyScore))
	mux.Handle("PUT /v1/workouts/{workoutID}/score", member(verifier, handler, handler.LogMyScore))
	mux.Handle("PUT /v1/workouts/{workoutID}/scores/{athleteID}", member(verifier, handler, handler.SetAthleteScore))
	mux.Handle("GET /v1/workouts/{workoutID}/ranking", member(verifier, handler, handler.GetWorkoutRanking))
}

func registerPointRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/point-types", member(verifier, handler, handler.ListPointTypes))
	mux.Handle("POST /v1/point-types", member(verifier, handler, handler.CreatePointType))
	mux.Handle("GET /v1/point-assignments", member(verifier, handler, handler.ListAssignments))
	mux.Handle("POST /v1/point-assignments", member(verifier, handler, handler.AssignPoints))
	mux.Handle("POST /v1/point-assignments/weekly", member(verifier, handler, handler.AssignWeeklyPoints))
	mux.Handle("POST /v1/point-assignments/reconcile", member(verifier, handler, handler.ReconcileAssignments))
	mux.Handle("DELETE /v1/point-assignments/{assignmentID}", member(verifier, handler, handler.DeleteAssignment))
	mux.Handle("GET /v1/athlete-points", member(verifier, handler, handler.ListAthletePoints))
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", member(verifier, handler, handler.GetDashboard))
	mux.Handle("GET /v1/leaderboard/teams", member(verifier, handler, handler.ListTeamStandings))
	mux.Handle("GET /v1/leaderboard/athletes", member(verifier, handler, handler.ListTopAthletes))
	mux.Handle("GET /v1/leaderboard/completion", member(verifier, handler, handler.ListWorkoutCompletion))
	mux.Handle("GET /v1/leaderboard/divisions", member(verifier, handler, handler.ListDivisions))
	mux.Handle("GET /v1/leaderboard/spirit", member(verifier, handler, handler.ListSpiritWinners))
}
