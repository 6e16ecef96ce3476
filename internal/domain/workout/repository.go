package workout

import "context"

// Repository describes workout persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Workout, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]Workout, error)
	GetByID(ctx context.Context, workoutID string) (Workout, bool, error)
	Create(ctx context.Context, item Workout) error
}
