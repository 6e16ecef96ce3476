package httpapi

import "net/http"

const defaultTopAthletes = 10

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.leaderboardService.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardDTO{
		Standings:   standingsToDTO(ctx, dashboard.Standings),
		Completion:  completionToDTO(ctx, dashboard.Completion),
		TopAthletes: athleteTotalsToDTO(ctx, dashboard.TopAthletes),
	})
}

func (h *Handler) ListTeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStandings")
	defer span.End()

	items, err := h.leaderboardService.TeamStandings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list team standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, items))
}

func (h *Handler) ListTopAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopAthletes")
	defer span.End()

	limit, err := queryInt(r, "limit", defaultTopAthletes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leaderboardService.TopAthletes(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list top athletes failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athleteTotalsToDTO(ctx, items))
}

func (h *Handler) ListWorkoutCompletion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWorkoutCompletion")
	defer span.End()

	items, err := h.leaderboardService.WorkoutCompletion(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list workout completion failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completionToDTO(ctx, items))
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	workoutID := queryString(r, "workout_id")
	items, err := h.leaderboardService.Divisions(ctx, workoutID)
	if err != nil {
		h.logger.WarnContext(ctx, "list divisions failed", "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, divisionsToDTO(ctx, items))
}

func (h *Handler) ListSpiritWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSpiritWinners")
	defer span.End()

	items, err := h.leaderboardService.SpiritWinners(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list spirit winners failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spiritWinnersToDTO(ctx, items))
}
