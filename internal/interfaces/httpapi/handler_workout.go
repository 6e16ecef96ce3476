package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fitness-league/internal/usecase"
)

func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWorkouts")
	defer span.End()

	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.workoutService.List(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "list workouts failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]workoutDTO, 0, len(items))
	for _, item := range items {
		out = append(out, workoutToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWorkout")
	defer span.End()

	workoutID := r.PathValue("workoutID")
	item, err := h.workoutService.Get(ctx, workoutID)
	if err != nil {
		h.logger.WarnContext(ctx, "get workout failed", "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workoutToDTO(ctx, item))
}

func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWorkout")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req createWorkoutRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput))
		return
	}

	created, err := h.workoutService.Create(ctx, identity, usecase.CreateWorkoutInput{
		Name:          req.Name,
		WeekNumber:    req.WeekNumber,
		Date:          date,
		ScoringType:   req.ScoringType,
		Description:   req.Description,
		Details:       req.Details,
		StandardsLink: req.StandardsLink,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create workout failed", "name", req.Name, "week", req.WeekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, workoutToDTO(ctx, created))
}

func (h *Handler) GetMyScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyScore")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	workoutID := r.PathValue("workoutID")
	window, err := h.scoreService.ScoringState(ctx, workoutID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring state failed", "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}
	item, exists, err := h.scoreService.GetOwnScore(ctx, identity, workoutID)
	if err != nil {
		h.logger.WarnContext(ctx, "get own score failed", "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := myScoreDTO{Window: scoringWindowToDTO(ctx, window)}
	if exists {
		dto := scoreToDTO(ctx, item)
		out.Score = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) LogMyScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogMyScore")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	workoutID := r.PathValue("workoutID")
	var req logScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.LogOwnScore(ctx, identity, usecase.LogScoreInput{
		WorkoutID: workoutID,
		Value:     req.Score,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "log own score failed", "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, logScoreResultToDTO(ctx, result))
}

func (h *Handler) SetAthleteScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAthleteScore")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	workoutID := r.PathValue("workoutID")
	athleteID := r.PathValue("athleteID")
	var req logScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.SetAthleteScore(ctx, identity, athleteID, usecase.LogScoreInput{
		WorkoutID: workoutID,
		Value:     req.Score,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set athlete score failed", "athlete_id", athleteID, "workout_id", workoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, logScoreResultToDTO(ctx, result))
}

func (h *Handler) GetWorkoutRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWorkoutRanking")
	defer span.End()

	workoutID := r.PathValue("workoutID")
	division := queryString(r, "division")
	ranking, err := h.leaderboardService.WorkoutRanking(ctx, workoutID, division)
	if err != nil {
		h.logger.WarnContext(ctx, "get workout ranking failed", "workout_id", workoutID, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workoutRankingDTO{
		Workout:  workoutToDTO(ctx, ranking.Workout),
		Division: ranking.Division,
		Rows:     rankedScoresToDTO(ctx, ranking.Rows),
	})
}
