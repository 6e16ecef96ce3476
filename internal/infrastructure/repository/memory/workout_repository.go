package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

type WorkoutRepository struct {
	mu    sync.RWMutex
	items map[string]workout.Workout
}

func NewWorkoutRepository(workouts []workout.Workout) *WorkoutRepository {
	items := make(map[string]workout.Workout, len(workouts))
	for _, w := range workouts {
		items[w.ID] = w
	}
	return &WorkoutRepository{items: items}
}

func (r *WorkoutRepository) List(_ context.Context) ([]workout.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(workout.Workout) bool { return true }), nil
}

func (r *WorkoutRepository) ListByWeek(_ context.Context, weekNumber int) ([]workout.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(w workout.Workout) bool { return w.WeekNumber == weekNumber }), nil
}

func (r *WorkoutRepository) GetByID(_ context.Context, workoutID string) (workout.Workout, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[workoutID]
	if !ok {
		return workout.Workout{}, false, nil
	}
	return item, true, nil
}

func (r *WorkoutRepository) Create(_ context.Context, item workout.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("workout %s already exists", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *WorkoutRepository) sorted(keep func(workout.Workout) bool) []workout.Workout {
	out := make([]workout.Workout, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekNumber != out[j].WeekNumber {
			return out[i].WeekNumber < out[j].WeekNumber
		}
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
