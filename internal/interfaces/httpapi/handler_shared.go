package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/leaderboard"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	"github.com/riskibarqy/fitness-league/internal/usecase"
)

type profileRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"omitempty,email,max=254"`
	CrossfitID string `json:"crossfit_id" validate:"omitempty,max=32"`
	Division   string `json:"division" validate:"omitempty,max=32"`
}

func (p profileRequest) toInput() usecase.ProfileInput {
	return usecase.ProfileInput{
		Name:       p.Name,
		Email:      p.Email,
		CrossfitID: p.CrossfitID,
		Division:   p.Division,
	}
}

type seedAthletesRequest struct {
	Athletes []profileRequest `json:"athletes" validate:"required,min=1,dive"`
}

type claimAthleteRequest struct {
	AthleteID string         `json:"athlete_id" validate:"required"`
	TeamID    string         `json:"team_id" validate:"omitempty"`
	Profile   profileRequest `json:"profile"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin captain athlete"`
}

type assignTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createWorkoutRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	WeekNumber    int    `json:"week_number" validate:"required,min=1"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	ScoringType   string `json:"scoring_type" validate:"required,oneof=time reps load"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Details       string `json:"details" validate:"omitempty,max=4000"`
	StandardsLink string `json:"standards_and_score_link" validate:"omitempty,url"`
}

type logScoreRequest struct {
	Score string `json:"score" validate:"required,max=64"`
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

type createPointTypeRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,oneof=weekly one_time performance completion"`
	Points   int    `json:"points" validate:"min=0"`
}

type assignPointsRequest struct {
	AthleteIDs   []string `json:"athlete_ids" validate:"required,min=1,dive,required"`
	PointTypeIDs []string `json:"point_type_ids" validate:"required,min=1,dive,required"`
	WorkoutID    string   `json:"workout_id" validate:"omitempty"`
	Notes        string   `json:"notes" validate:"omitempty,max=500"`
	Points       *int     `json:"points" validate:"omitempty,min=0"`
}

func (a assignPointsRequest) toInput() usecase.AssignPointsInput {
	return usecase.AssignPointsInput{
		AssigneeIDs:  a.AthleteIDs,
		PointTypeIDs: a.PointTypeIDs,
		WorkoutID:    a.WorkoutID,
		Notes:        a.Notes,
		Points:       a.Points,
	}
}

type athleteDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	CrossfitID string `json:"crossfitId,omitempty"`
	Division   string `json:"division,omitempty"`
	Role       string `json:"role"`
	Claimed    bool   `json:"claimed"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type profileDTO struct {
	Athlete athleteDTO `json:"athlete"`
	Team    *teamDTO   `json:"team,omitempty"`
}

type membershipDTO struct {
	ID         string    `json:"id"`
	AthleteID  string    `json:"athleteId"`
	TeamID     string    `json:"teamId"`
	IsActive   bool      `json:"isActive"`
	AssignedAt time.Time `json:"assignedAt"`
}

type teamSummaryDTO struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Members  int          `json:"members"`
	Captains []athleteDTO `json:"captains"`
}

type workoutDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WeekNumber    int    `json:"weekNumber"`
	Date          string `json:"date"`
	ScoringType   string `json:"scoringType"`
	Description   string `json:"description,omitempty"`
	Details       string `json:"details,omitempty"`
	StandardsLink string `json:"standardsAndScoreLink,omitempty"`
}

type scoringWindowDTO struct {
	WorkoutID string    `json:"workoutId"`
	State     string    `json:"state"`
	OpensAt   time.Time `json:"opensAt"`
	ClosesAt  time.Time `json:"closesAt"`
}

type scoreDTO struct {
	ID        int64     `json:"id"`
	WorkoutID string    `json:"workoutId"`
	AthleteID string    `json:"athleteId"`
	Score     string    `json:"score"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type myScoreDTO struct {
	Window scoringWindowDTO `json:"window"`
	Score  *scoreDTO        `json:"score"`
}

type logScoreResponseDTO struct {
	Score           scoreDTO         `json:"score"`
	Created         bool             `json:"created"`
	CompletionPoint *athletePointDTO `json:"completionPoint,omitempty"`
}

type pointTypeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Points   int    `json:"points"`
}

type assignmentDTO struct {
	ID          string    `json:"id"`
	AssignerID  string    `json:"assignerId"`
	AssigneeID  string    `json:"assigneeId"`
	PointTypeID string    `json:"pointTypeId"`
	WorkoutID   *string   `json:"workoutId"`
	Points      int       `json:"points"`
	Notes       string    `json:"notes,omitempty"`
	Mode        string    `json:"mode"`
	AssignedAt  time.Time `json:"assignedAt"`
}

type athletePointDTO struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	AthleteID    string    `json:"athleteId"`
	PointTypeID  string    `json:"pointTypeId"`
	WorkoutID    *string   `json:"workoutId"`
	Points       int       `json:"points"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type grantDTO struct {
	Assignment   assignmentDTO   `json:"assignment"`
	AthletePoint athletePointDTO `json:"athletePoint"`
}

type reconcileDTO struct {
	Scanned  int `json:"scanned"`
	Restored int `json:"restored"`
	Failed   int `json:"failed"`
}

type teamStandingDTO struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Members  int    `json:"members"`
	Points   int    `json:"points"`
}

type athleteTotalDTO struct {
	Rank      int    `json:"rank"`
	AthleteID string `json:"athleteId"`
	Name      string `json:"name"`
	Division  string `json:"division"`
	Points    int    `json:"points"`
}

type teamCompletionDTO struct {
	TeamID            string  `json:"teamId"`
	TeamName          string  `json:"teamName"`
	CompletedAthletes int     `json:"completedAthletes"`
	TotalAthletes     int     `json:"totalAthletes"`
	CompletionRate    float64 `json:"completionRate"`
	Points            int     `json:"points"`
}

type workoutCompletionDTO struct {
	Workout workoutDTO          `json:"workout"`
	Teams   []teamCompletionDTO `json:"teams"`
}

type rankedScoreDTO struct {
	Rank      int     `json:"rank,omitempty"`
	AthleteID string  `json:"athleteId"`
	Name      string  `json:"name"`
	Score     *string `json:"score"`
	Value     float64 `json:"value"`
}

type divisionDTO struct {
	Division string           `json:"division"`
	Athletes []athleteDTO     `json:"athletes"`
	Ranking  []rankedScoreDTO `json:"ranking,omitempty"`
}

type workoutRankingDTO struct {
	Workout  workoutDTO       `json:"workout"`
	Division string           `json:"division"`
	Rows     []rankedScoreDTO `json:"rows"`
}

type spiritWinnerDTO struct {
	WeekNumber  int    `json:"weekNumber"`
	WorkoutID   string `json:"workoutId,omitempty"`
	WorkoutName string `json:"workoutName,omitempty"`
	AthleteID   string `json:"athleteId"`
	AthleteName string `json:"athleteName"`
	Notes       string `json:"notes,omitempty"`
}

type dashboardDTO struct {
	Standings   []teamStandingDTO      `json:"standings"`
	Completion  []workoutCompletionDTO `json:"completion"`
	TopAthletes []athleteTotalDTO      `json:"topAthletes"`
}

func athleteToDTO(_ context.Context, v athlete.Athlete) athleteDTO {
	return athleteDTO{
		ID:         v.ID,
		Name:       v.Name,
		Email:      v.Email,
		CrossfitID: v.CrossfitID,
		Division:   divisionValue(v.Division),
		Role:       string(v.Role),
		Claimed:    !v.IsUnassigned(),
	}
}

func athletesToDTO(ctx context.Context, items []athlete.Athlete) []athleteDTO {
	out := make([]athleteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, athleteToDTO(ctx, item))
	}
	return out
}

// unclaimedAthleteToDTO hides contact details of athletes nobody has claimed yet.
func unclaimedAthleteToDTO(_ context.Context, v athlete.Athlete) athleteDTO {
	return athleteDTO{
		ID:       v.ID,
		Name:     v.Name,
		Division: divisionValue(v.Division),
		Role:     string(v.Role),
	}
}

func divisionValue(d *athlete.Division) string {
	if d == nil {
		return ""
	}
	return string(*d)
}

func teamToDTO(_ context.Context, v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name}
}

func profileToDTO(ctx context.Context, v usecase.AthleteProfile) profileDTO {
	out := profileDTO{Athlete: athleteToDTO(ctx, v.Athlete)}
	if v.Team != nil {
		t := teamToDTO(ctx, *v.Team)
		out.Team = &t
	}
	return out
}

func membershipToDTO(_ context.Context, v team.Membership) membershipDTO {
	return membershipDTO{
		ID:         v.ID,
		AthleteID:  v.AthleteID,
		TeamID:     v.TeamID,
		IsActive:   v.IsActive,
		AssignedAt: v.AssignedAt,
	}
}

func teamSummaryToDTO(ctx context.Context, v usecase.TeamSummary) teamSummaryDTO {
	return teamSummaryDTO{
		ID:       v.Team.ID,
		Name:     v.Team.Name,
		Members:  v.Members,
		Captains: athletesToDTO(ctx, v.Captains),
	}
}

func workoutToDTO(_ context.Context, v workout.Workout) workoutDTO {
	return workoutDTO{
		ID:            v.ID,
		Name:          v.Name,
		WeekNumber:    v.WeekNumber,
		Date:          v.Date.Format(time.DateOnly),
		ScoringType:   string(v.ScoringType),
		Description:   v.Description,
		Details:       v.Details,
		StandardsLink: v.StandardsLink,
	}
}

func scoringWindowToDTO(_ context.Context, v usecase.ScoringWindow) scoringWindowDTO {
	return scoringWindowDTO{
		WorkoutID: v.Workout.ID,
		State:     string(v.State),
		OpensAt:   v.OpensAt,
		ClosesAt:  v.ClosesAt,
	}
}

func scoreToDTO(_ context.Context, v score.Score) scoreDTO {
	return scoreDTO{
		ID:        v.ID,
		WorkoutID: v.WorkoutID,
		AthleteID: v.AthleteID,
		Score:     v.Value,
		Notes:     v.Notes,
		UpdatedAt: v.UpdatedAt,
	}
}

func logScoreResultToDTO(ctx context.Context, v usecase.LogScoreResult) logScoreResponseDTO {
	out := logScoreResponseDTO{
		Score:   scoreToDTO(ctx, v.Score),
		Created: v.Created,
	}
	if v.CompletionPoint != nil {
		p := athletePointToDTO(ctx, *v.CompletionPoint)
		out.CompletionPoint = &p
	}
	return out
}

func pointTypeToDTO(_ context.Context, v pointtype.PointType) pointTypeDTO {
	return pointTypeDTO{
		ID:       v.ID,
		Name:     v.Name,
		Category: string(v.Category),
		Points:   v.Points,
	}
}

func assignmentToDTO(_ context.Context, v points.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:          v.ID,
		AssignerID:  v.AssignerID,
		AssigneeID:  v.AssigneeID,
		PointTypeID: v.PointTypeID,
		WorkoutID:   v.WorkoutID,
		Points:      v.Points,
		Notes:       v.Notes,
		Mode:        string(v.Mode),
		AssignedAt:  v.AssignedAt,
	}
}

func athletePointToDTO(_ context.Context, v points.AthletePoint) athletePointDTO {
	return athletePointDTO{
		ID:           v.ID,
		AssignmentID: v.AssignmentID,
		AthleteID:    v.AthleteID,
		PointTypeID:  v.PointTypeID,
		WorkoutID:    v.WorkoutID,
		Points:       v.Points,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
	}
}

func grantsToDTO(ctx context.Context, items []points.Grant) []grantDTO {
	out := make([]grantDTO, 0, len(items))
	for _, item := range items {
		out = append(out, grantDTO{
			Assignment:   assignmentToDTO(ctx, item.Assignment),
			AthletePoint: athletePointToDTO(ctx, item.AthletePoint),
		})
	}
	return out
}

func standingsToDTO(_ context.Context, items []leaderboard.TeamStanding) []teamStandingDTO {
	out := make([]teamStandingDTO, 0, len(items))
	for i, item := range items {
		out = append(out, teamStandingDTO{
			Rank:     i + 1,
			TeamID:   item.Team.ID,
			TeamName: item.Team.Name,
			Members:  item.Members,
			Points:   item.Points,
		})
	}
	return out
}

func athleteTotalsToDTO(_ context.Context, items []leaderboard.AthleteTotal) []athleteTotalDTO {
	out := make([]athleteTotalDTO, 0, len(items))
	for i, item := range items {
		out = append(out, athleteTotalDTO{
			Rank:      i + 1,
			AthleteID: item.AthleteID,
			Name:      item.Name,
			Division:  leaderboard.DivisionName(item.Division),
			Points:    item.Points,
		})
	}
	return out
}

func completionToDTO(ctx context.Context, items []leaderboard.WorkoutCompletion) []workoutCompletionDTO {
	out := make([]workoutCompletionDTO, 0, len(items))
	for _, item := range items {
		teams := make([]teamCompletionDTO, 0, len(item.Teams))
		for _, tc := range item.Teams {
			teams = append(teams, teamCompletionDTO{
				TeamID:            tc.Team.ID,
				TeamName:          tc.Team.Name,
				CompletedAthletes: tc.Completed,
				TotalAthletes:     tc.Total,
				CompletionRate:    tc.Ratio(),
				Points:            tc.Points,
			})
		}
		out = append(out, workoutCompletionDTO{
			Workout: workoutToDTO(ctx, item.Workout),
			Teams:   teams,
		})
	}
	return out
}

// rankedScoresToDTO numbers only rows with a score; athletes without one trail unranked.
func rankedScoresToDTO(_ context.Context, items []leaderboard.RankedScore) []rankedScoreDTO {
	out := make([]rankedScoreDTO, 0, len(items))
	for i, item := range items {
		row := rankedScoreDTO{
			AthleteID: item.Athlete.ID,
			Name:      item.Athlete.Name,
			Value:     item.Value,
		}
		if item.Score != nil {
			value := item.Score.Value
			row.Score = &value
			row.Rank = i + 1
		}
		out = append(out, row)
	}
	return out
}

func divisionsToDTO(ctx context.Context, items []leaderboard.DivisionGroup) []divisionDTO {
	out := make([]divisionDTO, 0, len(items))
	for _, item := range items {
		group := divisionDTO{
			Division: item.Division,
			Athletes: athletesToDTO(ctx, item.Athletes),
		}
		if item.Ranking != nil {
			group.Ranking = rankedScoresToDTO(ctx, item.Ranking)
		}
		out = append(out, group)
	}
	return out
}

func spiritWinnersToDTO(_ context.Context, items []leaderboard.SpiritWinner) []spiritWinnerDTO {
	out := make([]spiritWinnerDTO, 0, len(items))
	for _, item := range items {
		row := spiritWinnerDTO{
			WeekNumber:  item.WeekNumber,
			AthleteID:   item.Athlete.ID,
			AthleteName: item.Athlete.Name,
			Notes:       item.Notes,
		}
		if item.Workout != nil {
			row.WorkoutID = item.Workout.ID
			row.WorkoutName = item.Workout.Name
		}
		out = append(out, row)
	}
	return out
}
