package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fitness-league/internal/usecase"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	profile, err := h.athleteService.Me(ctx, identity)
	if err != nil {
		h.logger.WarnContext(ctx, "get own profile failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(ctx, profile))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req profileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.athleteService.UpdateProfile(ctx, identity, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update own profile failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athleteToDTO(ctx, updated))
}

func (h *Handler) ListUnassignedAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnassignedAthletes")
	defer span.End()

	items, err := h.athleteService.ListUnassigned(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list unassigned athletes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]athleteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, unclaimedAthleteToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ClaimAthlete(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimAthlete")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req claimAthleteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.athleteService.Claim(ctx, principal, usecase.ClaimInput{
		AthleteID: req.AthleteID,
		TeamID:    req.TeamID,
		Profile:   req.Profile.toInput(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "claim athlete failed", "athlete_id", req.AthleteID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(ctx, profile))
}

func (h *Handler) ListAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAthletes")
	defer span.End()

	items, err := h.athleteService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list athletes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athletesToDTO(ctx, items))
}

func (h *Handler) SeedAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedAthletes")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req seedAthletesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.ProfileInput, 0, len(req.Athletes))
	for _, item := range req.Athletes {
		inputs = append(inputs, item.toInput())
	}

	created, err := h.athleteService.SeedUnassigned(ctx, identity, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "seed athletes failed", "count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, athletesToDTO(ctx, created))
}

func (h *Handler) SetAthleteRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAthleteRole")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	athleteID := r.PathValue("athleteID")
	var req setRoleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.athleteService.SetRole(ctx, identity, athleteID, req.Role)
	if err != nil {
		h.logger.WarnContext(ctx, "set athlete role failed", "athlete_id", athleteID, "role", req.Role, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athleteToDTO(ctx, updated))
}

func (h *Handler) AssignAthleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignAthleteTeam")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	athleteID := r.PathValue("athleteID")
	var req assignTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	membership, err := h.athleteService.AssignTeam(ctx, identity, athleteID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign athlete team failed", "athlete_id", athleteID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipToDTO(ctx, membership))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamSummaryToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	identity, ok := h.requireIdentity(ctx, w)
	if !ok {
		return
	}

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, identity, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, created))
}
