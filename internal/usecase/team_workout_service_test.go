package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	workoutmock "github.com/riskibarqy/fitness-league/internal/mocks/domain/workout"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamService_ListWithCaptains(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := NewTeamService(stores.teams, stores.athletes, stores.ids)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	if summaries[0].Members != 2 || len(summaries[0].Captains) != 1 || summaries[0].Captains[0].ID != "captain" {
		t.Fatalf("unexpected red summary: %+v", summaries[0])
	}

	created, err := svc.Create(ctx, identityOf(stores, "admin"), "  Green  ")
	require.NoError(t, err)
	if created.Name != "Green" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if _, err := svc.Create(ctx, identityOf(stores, "admin"), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWorkoutService_CreateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	workoutRepo := workoutmock.NewRepository(t)
	svc := NewWorkoutService(workoutRepo, &sequenceIDGenerator{})
	admin := athlete.Identity{Athlete: athlete.Athlete{ID: "admin", Role: athlete.RoleAdmin}}
	date := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)

	workoutRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(w workout.Workout) bool {
			return w.Name == "26.1" && w.WeekNumber == 1 && w.ScoringType == workout.ScoringReps && w.ID != ""
		})).
		Return(nil).
		Once()

	created, err := svc.Create(ctx, admin, CreateWorkoutInput{Name: "26.1", WeekNumber: 1, Date: date, ScoringType: "REPS"})
	require.NoError(t, err)
	require.Equal(t, workout.ScoringReps, created.ScoringType)

	if _, err := svc.Create(ctx, admin, CreateWorkoutInput{Name: "26.2", WeekNumber: 2, Date: date, ScoringType: "distance"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, admin, CreateWorkoutInput{Name: "26.2", WeekNumber: 0, Date: date, ScoringType: "time"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 0, got %v", err)
	}
}

func TestWorkoutService_ListByWeekUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	workoutRepo := workoutmock.NewRepository(t)
	svc := NewWorkoutService(workoutRepo, &sequenceIDGenerator{})

	workoutRepo.
		On("ListByWeek", mock.Anything, 2).
		Return([]workout.Workout{{ID: "w2", WeekNumber: 2}}, nil).
		Once()
	workoutRepo.
		On("List", mock.Anything).
		Return([]workout.Workout{{ID: "w1"}, {ID: "w2"}}, nil).
		Once()

	week, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, week, 1)

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
