package score

import "context"

// Repository describes workout score persistence needs from use cases.
type Repository interface {
	GetByAthleteAndWorkout(ctx context.Context, athleteID, workoutID string) (Score, bool, error)
	ListByWorkout(ctx context.Context, workoutID string) ([]Score, error)
	// Upsert writes the score keyed on (workout, athlete). A nil AthletePointID
	// keeps the stored link.
	Upsert(ctx context.Context, item Score) (Score, error)
}
