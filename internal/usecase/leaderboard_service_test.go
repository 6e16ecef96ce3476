package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fitness-league/internal/domain/leaderboard"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_Dashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	points := stores.pointService()
	scores := stores.scoreService()
	admin := identityOf(stores, "admin")

	_, err := points.AssignBulk(ctx, admin, AssignPointsInput{AssigneeIDs: []string{"a2"}, PointTypeIDs: []string{"pt-podium"}, WorkoutID: "w1"})
	require.NoError(t, err)
	_, err = points.AssignBulk(ctx, admin, AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-spirit"}, WorkoutID: "w1", Notes: "cheered everyone"})
	require.NoError(t, err)
	_, err = scores.LogOwnScore(ctx, identityOf(stores, "a1"), LogScoreInput{WorkoutID: "w1", Value: "10:00"})
	require.NoError(t, err)
	_, err = scores.LogOwnScore(ctx, identityOf(stores, "captain"), LogScoreInput{WorkoutID: "w1", Value: "9:30"})
	require.NoError(t, err)

	svc := NewLeaderboardService(stores.athletes, stores.teams, stores.pointTypes, stores.workouts, stores.points, stores.scores, nil, "")

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	if len(dashboard.Standings) != 2 {
		t.Fatalf("expected 2 teams, got=%d", len(dashboard.Standings))
	}
	if dashboard.Standings[0].Team.ID != "red" || dashboard.Standings[0].Points != 4 {
		t.Fatalf("unexpected leader: %+v", dashboard.Standings[0])
	}
	if dashboard.Standings[1].Points != 3 {
		t.Fatalf("unexpected runner-up: %+v", dashboard.Standings[1])
	}

	if len(dashboard.Completion) != 2 || dashboard.Completion[0].Workout.ID != "w1" {
		t.Fatalf("unexpected completion: %+v", dashboard.Completion)
	}
	red := dashboard.Completion[0].Teams[0]
	if red.Completed != 2 || red.Total != 2 || red.Ratio() != 1 {
		t.Fatalf("unexpected red completion: %+v", red)
	}

	if len(dashboard.TopAthletes) != 5 || dashboard.TopAthletes[0].AthleteID != "a1" {
		t.Fatalf("unexpected top athletes: %+v", dashboard.TopAthletes)
	}

	spirit, err := svc.SpiritWinners(ctx)
	require.NoError(t, err)
	if len(spirit) != 1 || spirit[0].Athlete.ID != "a1" || spirit[0].WeekNumber != 1 {
		t.Fatalf("unexpected spirit winners: %+v", spirit)
	}
}

func TestLeaderboardService_WorkoutRankingAndDivisions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	scores := stores.scoreService()
	admin := identityOf(stores, "admin")

	for athleteID, value := range map[string]string{"a1": "12:34", "captain": "9:59", "a2": "8:00"} {
		_, err := scores.SetAthleteScore(ctx, admin, athleteID, LogScoreInput{WorkoutID: "w1", Value: value})
		require.NoError(t, err)
	}

	svc := NewLeaderboardService(stores.athletes, stores.teams, stores.pointTypes, stores.workouts, stores.points, stores.scores, leaderboard.ByName, "")

	ranking, err := svc.WorkoutRanking(ctx, "w1", "open (m)")
	require.NoError(t, err)
	if len(ranking.Rows) != 2 || ranking.Rows[0].Athlete.ID != "captain" || ranking.Rows[1].Athlete.ID != "a1" {
		t.Fatalf("unexpected ranking: %+v", ranking.Rows)
	}

	mixedCase, err := svc.WorkoutRanking(ctx, "w1", " Open (M) ")
	require.NoError(t, err)
	if mixedCase.Division != "open (m)" || len(mixedCase.Rows) != 2 {
		t.Fatalf("division filter must be case-insensitive: %+v", mixedCase)
	}
	if _, err := svc.WorkoutRanking(ctx, "w1", "elite"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown division, got %v", err)
	}

	groups, err := svc.Divisions(ctx, "w1")
	require.NoError(t, err)
	if len(groups) != 2 || groups[0].Division != "open (m)" || groups[1].Division != leaderboard.Unassigned {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	unassigned := groups[1].Ranking
	if len(unassigned) != 3 || unassigned[0].Athlete.ID != "a2" || unassigned[2].Score != nil {
		t.Fatalf("unexpected unassigned ranking: %+v", unassigned)
	}

	top, err := svc.TopAthletes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
}
