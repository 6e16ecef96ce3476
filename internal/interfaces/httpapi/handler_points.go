package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/usecase"
)

func (h *Handler) ListPointTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPointTypes")
	defer span.End()

	category := queryString(r, "category")
	items, err := h.pointService.ListPointTypes(ctx, category)
	if err != nil {
		h.logger.WarnContext(ctx, "list point types failed", "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]pointTypeDTO, 0, len(items))
	for _, item := range items {
		out = append(out, pointTypeToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreatePointType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePointType")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req createPointTypeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.pointService.CreatePointType(ctx, identity, usecase.CreatePointTypeInput{
		Name:     req.Name,
		Category: req.Category,
		Points:   req.Points,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create point type failed", "name", req.Name, "category", req.Category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pointTypeToDTO(ctx, created))
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssignments")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	filter := points.Filter{
		AthleteID:   queryString(r, "athlete_id"),
		WorkoutID:   queryString(r, "workout_id"),
		AssignerID:  queryString(r, "assigner_id"),
		PointTypeID: queryString(r, "point_type_id"),
	}
	items, err := h.pointService.ListAssignments(ctx, identity, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list point assignments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]assignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, assignmentToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AssignPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPoints")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req assignPointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grants, err := h.pointService.AssignBulk(ctx, identity, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "assign points failed",
			"athletes", len(req.AthleteIDs),
			"point_types", len(req.PointTypeIDs),
			"workout_id", req.WorkoutID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, grantsToDTO(ctx, grants))
}

func (h *Handler) AssignWeeklyPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignWeeklyPoints")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req assignPointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grants, err := h.pointService.AssignWeekly(ctx, identity, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "assign weekly points failed",
			"athletes", len(req.AthleteIDs),
			"workout_id", req.WorkoutID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, grantsToDTO(ctx, grants))
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAssignment")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	assignmentID := r.PathValue("assignmentID")
	if err := h.pointService.DeleteAssignment(ctx, identity, assignmentID); err != nil {
		h.logger.WarnContext(ctx, "delete point assignment failed", "assignment_id", assignmentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": assignmentID})
}

func (h *Handler) ReconcileAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileAssignments")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	result, err := h.pointService.Reconcile(ctx, identity)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile point assignments failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if result.Failed > 0 {
		h.logger.WarnContext(ctx, "reconcile left orphaned assignments", "scanned", result.Scanned, "restored", result.Restored, "failed", result.Failed)
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileDTO{
		Scanned:  result.Scanned,
		Restored: result.Restored,
		Failed:   result.Failed,
	})
}

func (h *Handler) ListAthletePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAthletePoints")
	defer span.End()

	filter := points.Filter{
		AthleteID: queryString(r, "athlete_id"),
		WorkoutID: queryString(r, "workout_id"),
	}
	items, err := h.pointService.ListAthletePoints(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list athlete points failed", "athlete_id", filter.AthleteID, "workout_id", filter.WorkoutID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]athletePointDTO, 0, len(items))
	for _, item := range items {
		out = append(out, athletePointToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
