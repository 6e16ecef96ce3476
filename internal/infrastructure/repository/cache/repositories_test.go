package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/fitness-league/internal/platform/cache"
)

type countingWorkoutRepository struct {
	workout.Repository
	listCalls int
}

func (r *countingWorkoutRepository) List(ctx context.Context) ([]workout.Workout, error) {
	r.listCalls++
	return r.Repository.List(ctx)
}

func TestWorkoutRepository_ListIsCachedUntilCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := &countingWorkoutRepository{Repository: memory.NewWorkoutRepository(memory.SeedWorkouts(time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)))}
	repo := NewWorkoutRepository(base, basecache.NewStore(time.Minute))

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("first List error: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("second List error: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected one backend call, got %d", base.listCalls)
	}

	err = repo.Create(ctx, workout.Workout{
		ID:          "w-extra",
		Name:        "26.4",
		WeekNumber:  4,
		Date:        time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC),
		ScoringType: workout.ScoringReps,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	after, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List after create error: %v", err)
	}
	if base.listCalls != 2 {
		t.Fatalf("expected cache invalidation on create, got %d backend calls", base.listCalls)
	}
	if len(after) != len(first)+1 {
		t.Fatalf("expected %d workouts after create, got %d", len(first)+1, len(after))
	}
}

func TestPointTypeRepository_ListKeysByCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPointTypeRepository(memory.NewPointTypeRepository(memory.SeedPointTypes()), basecache.NewStore(time.Minute))

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("List all error: %v", err)
	}
	weekly := pointtype.CategoryWeekly
	onlyWeekly, err := repo.List(ctx, &weekly)
	if err != nil {
		t.Fatalf("List weekly error: %v", err)
	}
	if len(onlyWeekly) >= len(all) {
		t.Fatalf("expected category filter to narrow results, all=%d weekly=%d", len(all), len(onlyWeekly))
	}
	for _, item := range onlyWeekly {
		if item.Category != pointtype.CategoryWeekly {
			t.Fatalf("unexpected category %s in weekly list", item.Category)
		}
	}
}

func TestTeamRepository_GetByIDCachesMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(memory.NewTeamRepository(memory.SeedTeams(), nil), basecache.NewStore(time.Minute))

	if _, exists, err := repo.GetByID(ctx, "missing"); err != nil || exists {
		t.Fatalf("expected missing team, exists=%v err=%v", exists, err)
	}
	item, exists, err := repo.GetByID(ctx, memory.TeamIDRed)
	if err != nil || !exists {
		t.Fatalf("expected seeded team, exists=%v err=%v", exists, err)
	}
	if item.Name != "Red Rhinos" {
		t.Fatalf("unexpected team name %q", item.Name)
	}
}
