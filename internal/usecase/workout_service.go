package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	idgen "github.com/riskibarqy/fitness-league/internal/platform/id"
)

type CreateWorkoutInput struct {
	Name          string
	WeekNumber    int
	Date          time.Time
	ScoringType   string
	Description   string
	Details       string
	StandardsLink string
}

type WorkoutService struct {
	workoutRepo workout.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewWorkoutService(workoutRepo workout.Repository, idGen idgen.Generator) *WorkoutService {
	return &WorkoutService{
		workoutRepo: workoutRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

// List returns every workout, or one week's workouts when week is positive.
func (s *WorkoutService) List(ctx context.Context, week int) ([]workout.Workout, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkoutService.List")
	defer span.End()

	var (
		items []workout.Workout
		err   error
	)
	if week > 0 {
		items, err = s.workoutRepo.ListByWeek(ctx, week)
	} else {
		items, err = s.workoutRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return items, nil
}

func (s *WorkoutService) Get(ctx context.Context, workoutID string) (workout.Workout, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkoutService.Get")
	defer span.End()

	workoutID = strings.TrimSpace(workoutID)
	if workoutID == "" {
		return workout.Workout{}, fmt.Errorf("%w: workout id is required", ErrInvalidInput)
	}
	item, exists, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return workout.Workout{}, fmt.Errorf("get workout: %w", err)
	}
	if !exists {
		return workout.Workout{}, fmt.Errorf("%w: workout=%s", ErrNotFound, workoutID)
	}
	return item, nil
}

func (s *WorkoutService) Create(ctx context.Context, identity athlete.Identity, input CreateWorkoutInput) (workout.Workout, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkoutService.Create")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return workout.Workout{}, err
	}
	scoringType, err := workout.ParseScoringType(input.ScoringType)
	if err != nil {
		return workout.Workout{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	newID, err := s.idGen.NewID()
	if err != nil {
		return workout.Workout{}, fmt.Errorf("generate workout id: %w", err)
	}

	item := workout.Workout{
		ID:            newID,
		Name:          strings.TrimSpace(input.Name),
		WeekNumber:    input.WeekNumber,
		Date:          input.Date,
		ScoringType:   scoringType,
		Description:   strings.TrimSpace(input.Description),
		Details:       strings.TrimSpace(input.Details),
		StandardsLink: strings.TrimSpace(input.StandardsLink),
		CreatedAt:     s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return workout.Workout{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.workoutRepo.Create(ctx, item); err != nil {
		return workout.Workout{}, fmt.Errorf("create workout: %w", err)
	}
	return item, nil
}
