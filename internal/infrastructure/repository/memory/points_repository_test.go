package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/stretchr/testify/require"
)

func TestPointsRepository_DeleteAssignmentUnlinksScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scores := NewScoreRepository()
	repo := NewPointsRepository(scores)

	workoutID := "w1"
	grant := points.NewGrant(points.Assignment{
		ID:          "as-1",
		AssignerID:  "a1",
		AssigneeID:  "a1",
		PointTypeID: "pt-done",
		WorkoutID:   &workoutID,
		Points:      1,
		Mode:        points.GrantModeOnce,
		AssignedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}, "ap-1")
	require.NoError(t, repo.CreateGrants(ctx, []points.Grant{grant}))

	pointID := "ap-1"
	_, err := scores.Upsert(ctx, score.Score{WorkoutID: workoutID, AthleteID: "a1", Value: "12:34", AthletePointID: &pointID})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAssignment(ctx, "as-1"))

	item, exists, err := scores.GetByAthleteAndWorkout(ctx, "a1", workoutID)
	require.NoError(t, err)
	if !exists {
		t.Fatalf("score must survive deleting its athlete point")
	}
	if item.AthletePointID != nil {
		t.Fatalf("expected athlete point link cleared, got %q", *item.AthletePointID)
	}

	rows, err := repo.ListAthletePoints(ctx, points.Filter{})
	require.NoError(t, err)
	if len(rows) != 0 {
		t.Fatalf("expected no athlete points, got %+v", rows)
	}
}
