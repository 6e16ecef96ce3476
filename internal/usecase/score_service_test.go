package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	workoutmock "github.com/riskibarqy/fitness-league/internal/mocks/domain/workout"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScoreService_LogOwnScoreFirstCreationGrantsCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.scoreService()
	a1 := identityOf(stores, "a1")

	first, err := svc.LogOwnScore(ctx, a1, LogScoreInput{WorkoutID: "w1", Value: "12:34"})
	require.NoError(t, err)
	if !first.Created || first.CompletionPoint == nil {
		t.Fatalf("first score must be a creation with a completion grant: %+v", first)
	}
	if first.Score.AthletePointID == nil || *first.Score.AthletePointID != first.CompletionPoint.ID {
		t.Fatalf("score must link the completion point: %+v", first.Score)
	}

	second, err := svc.LogOwnScore(ctx, a1, LogScoreInput{WorkoutID: "w1", Value: "11:59", Notes: "rx"})
	require.NoError(t, err)
	if second.Created || second.CompletionPoint != nil {
		t.Fatalf("update must not grant again: %+v", second)
	}
	if second.Score.ID != first.Score.ID || second.Score.Value != "11:59" {
		t.Fatalf("update must rewrite the same row: first=%+v second=%+v", first.Score, second.Score)
	}
	if second.Score.AthletePointID == nil || *second.Score.AthletePointID != first.CompletionPoint.ID {
		t.Fatalf("update must keep the completion link: %+v", second.Score)
	}

	rows, err := stores.points.ListAthletePoints(ctx, points.Filter{AthleteID: "a1"})
	require.NoError(t, err)
	if len(rows) != 1 || rows[0].PointTypeID != "pt-done" || rows[0].Points != 1 {
		t.Fatalf("expected one completion point, got=%+v", rows)
	}
}

func TestScoreService_LogOwnScoreOutsideWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.scoreService()
	a1 := identityOf(stores, "a1")

	_, err := svc.LogOwnScore(ctx, a1, LogScoreInput{WorkoutID: "w2", Value: "100"})
	if !errors.Is(err, ErrScoringClosed) {
		t.Fatalf("expected ErrScoringClosed before the workout date, got %v", err)
	}

	svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 3) }
	_, err = svc.LogOwnScore(ctx, a1, LogScoreInput{WorkoutID: "w1", Value: "10:00"})
	if !errors.Is(err, ErrScoringClosed) {
		t.Fatalf("expected ErrScoringClosed after the window, got %v", err)
	}

	rows, err := stores.points.ListAthletePoints(ctx, points.Filter{})
	require.NoError(t, err)
	if len(rows) != 0 {
		t.Fatalf("closed window must not grant, got=%d", len(rows))
	}
}

func TestScoreService_AdminOverrideIgnoresWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.scoreService()
	svc.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }

	result, err := svc.SetAthleteScore(ctx, identityOf(stores, "admin"), "a3", LogScoreInput{WorkoutID: "w1", Value: "9:00"})
	require.NoError(t, err)
	if !result.Created || result.CompletionPoint == nil {
		t.Fatalf("admin creation must grant completion: %+v", result)
	}

	assignments, err := stores.points.ListAssignments(ctx, points.Filter{AthleteID: "a3"})
	require.NoError(t, err)
	if len(assignments) != 1 || assignments[0].AssignerID != "admin" {
		t.Fatalf("admin must be recorded as assigner, got=%+v", assignments)
	}

	_, err = svc.SetAthleteScore(ctx, identityOf(stores, "a1"), "a3", LogScoreInput{WorkoutID: "w1", Value: "8:00"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestScoreService_ScoringStateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	workoutRepo := workoutmock.NewRepository(t)
	jakarta := time.FixedZone("WIB", 7*60*60)
	svc := NewScoreService(nil, workoutRepo, nil, nil, workout.NewWindow(72*time.Hour), jakarta, nil)

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	workoutRepo.
		On("GetByID", mock.Anything, "w1").
		Return(workout.Workout{ID: "w1", Date: date, ScoringType: workout.ScoringTime}, true, nil).
		Twice()

	svc.now = func() time.Time { return time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC) }
	state, err := svc.ScoringState(ctx, "w1")
	require.NoError(t, err)
	if state.State != workout.WindowOpen {
		t.Fatalf("midnight in the competition timezone must open the window, got=%s", state.State)
	}
	if !state.ClosesAt.Equal(state.OpensAt.Add(72 * time.Hour)) {
		t.Fatalf("unexpected close time: %s", state.ClosesAt)
	}

	svc.now = func() time.Time { return time.Date(2026, 3, 4, 16, 59, 0, 0, time.UTC) }
	state, err = svc.ScoringState(ctx, "w1")
	require.NoError(t, err)
	if state.State != workout.WindowNotYetOpen {
		t.Fatalf("expected not_yet_open, got=%s", state.State)
	}
}

func TestScoreService_GetOwnScoreMissingWorkoutUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	workoutRepo := workoutmock.NewRepository(t)
	svc := NewScoreService(nil, workoutRepo, nil, nil, workout.NewWindow(0), nil, nil)

	workoutRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "missing").
		Return(workout.Workout{}, false, nil).
		Once()

	_, _, err := svc.GetOwnScore(ctx, athlete.Identity{Athlete: athlete.Athlete{ID: "a1"}}, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
