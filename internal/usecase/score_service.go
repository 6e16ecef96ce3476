package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

type completionGranter interface {
	GrantCompletion(ctx context.Context, assignerID, athleteID, workoutID, notes string) (points.AthletePoint, error)
}

// ScoreRecorder receives score write outcomes.
type ScoreRecorder interface {
	ObserveScore(created bool, admin bool)
}

type noopScoreRecorder struct{}

func (noopScoreRecorder) ObserveScore(bool, bool) {}

type LogScoreInput struct {
	WorkoutID string
	Value     string
	Notes     string
}

// LogScoreResult reports whether the score was created and, if so, the
// completion point it produced.
type LogScoreResult struct {
	Score           score.Score
	Created         bool
	CompletionPoint *points.AthletePoint
}

// ScoringWindow describes the self-service logging state of a workout.
type ScoringWindow struct {
	Workout  workout.Workout
	State    workout.WindowState
	OpensAt  time.Time
	ClosesAt time.Time
}

type ScoreService struct {
	athleteRepo athlete.Repository
	workoutRepo workout.Repository
	scoreRepo   score.Repository
	granter     completionGranter
	window      workout.Window
	location    *time.Location
	recorder    ScoreRecorder
	now         func() time.Time
}

func NewScoreService(
	athleteRepo athlete.Repository,
	workoutRepo workout.Repository,
	scoreRepo score.Repository,
	granter completionGranter,
	window workout.Window,
	location *time.Location,
	recorder ScoreRecorder,
) *ScoreService {
	if location == nil {
		location = time.UTC
	}
	if recorder == nil {
		recorder = noopScoreRecorder{}
	}

	return &ScoreService{
		athleteRepo: athleteRepo,
		workoutRepo: workoutRepo,
		scoreRepo:   scoreRepo,
		granter:     granter,
		window:      window,
		location:    location,
		recorder:    recorder,
		now:         time.Now,
	}
}

// LogOwnScore records the caller's score while the workout window is open.
// The first score for a workout also grants the completion point.
func (s *ScoreService) LogOwnScore(ctx context.Context, identity athlete.Identity, input LogScoreInput) (LogScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.LogOwnScore")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return LogScoreResult{}, err
	}

	item, err := s.getWorkout(ctx, input.WorkoutID)
	if err != nil {
		return LogScoreResult{}, err
	}
	if state := s.stateOf(item); !state.AcceptsScores() {
		return LogScoreResult{}, fmt.Errorf("%w: workout=%s state=%s", ErrScoringClosed, item.ID, state)
	}

	result, err := s.write(ctx, identity.AthleteID(), identity.AthleteID(), item.ID, input)
	if err != nil {
		return LogScoreResult{}, err
	}
	s.recorder.ObserveScore(result.Created, false)
	return result, nil
}

// SetAthleteScore lets an admin write any athlete's score regardless of the window.
func (s *ScoreService) SetAthleteScore(ctx context.Context, identity athlete.Identity, athleteID string, input LogScoreInput) (LogScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SetAthleteScore")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return LogScoreResult{}, err
	}
	athleteID = strings.TrimSpace(athleteID)
	if athleteID == "" {
		return LogScoreResult{}, fmt.Errorf("%w: athlete id is required", ErrInvalidInput)
	}
	if _, exists, err := s.athleteRepo.GetByID(ctx, athleteID); err != nil {
		return LogScoreResult{}, fmt.Errorf("get athlete: %w", err)
	} else if !exists {
		return LogScoreResult{}, fmt.Errorf("%w: athlete=%s", ErrNotFound, athleteID)
	}

	item, err := s.getWorkout(ctx, input.WorkoutID)
	if err != nil {
		return LogScoreResult{}, err
	}

	result, err := s.write(ctx, identity.AthleteID(), athleteID, item.ID, input)
	if err != nil {
		return LogScoreResult{}, err
	}
	s.recorder.ObserveScore(result.Created, true)
	return result, nil
}

func (s *ScoreService) write(ctx context.Context, assignerID, athleteID, workoutID string, input LogScoreInput) (LogScoreResult, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return LogScoreResult{}, fmt.Errorf("%w: score value is required", ErrInvalidInput)
	}
	notes := strings.TrimSpace(input.Notes)

	_, exists, err := s.scoreRepo.GetByAthleteAndWorkout(ctx, athleteID, workoutID)
	if err != nil {
		return LogScoreResult{}, fmt.Errorf("get existing score: %w", err)
	}

	next := score.Score{
		WorkoutID: workoutID,
		AthleteID: athleteID,
		Value:     value,
		Notes:     notes,
		UpdatedAt: s.now().UTC(),
	}
	result := LogScoreResult{Created: !exists}
	if !exists {
		point, err := s.granter.GrantCompletion(ctx, assignerID, athleteID, workoutID, notes)
		if err != nil {
			return LogScoreResult{}, fmt.Errorf("grant completion point: %w", err)
		}
		next.AthletePointID = &point.ID
		next.CreatedAt = next.UpdatedAt
		result.CompletionPoint = &point
	}

	stored, err := s.scoreRepo.Upsert(ctx, next)
	if err != nil {
		return LogScoreResult{}, fmt.Errorf("upsert score: %w", err)
	}
	result.Score = stored
	return result, nil
}

func (s *ScoreService) GetOwnScore(ctx context.Context, identity athlete.Identity, workoutID string) (score.Score, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.GetOwnScore")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return score.Score{}, false, err
	}
	item, err := s.getWorkout(ctx, workoutID)
	if err != nil {
		return score.Score{}, false, err
	}

	got, exists, err := s.scoreRepo.GetByAthleteAndWorkout(ctx, identity.AthleteID(), item.ID)
	if err != nil {
		return score.Score{}, false, fmt.Errorf("get score: %w", err)
	}
	return got, exists, nil
}

func (s *ScoreService) ScoringState(ctx context.Context, workoutID string) (ScoringWindow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ScoringState")
	defer span.End()

	item, err := s.getWorkout(ctx, workoutID)
	if err != nil {
		return ScoringWindow{}, err
	}

	opens := s.scheduledStart(item)
	return ScoringWindow{
		Workout:  item,
		State:    s.window.State(opens, s.now()),
		OpensAt:  opens,
		ClosesAt: s.window.ClosesAt(opens),
	}, nil
}

func (s *ScoreService) getWorkout(ctx context.Context, workoutID string) (workout.Workout, error) {
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

func (s *ScoreService) stateOf(item workout.Workout) workout.WindowState {
	return s.window.State(s.scheduledStart(item), s.now())
}

// scheduledStart is midnight of the workout's calendar date in the competition timezone.
func (s *ScoreService) scheduledStart(item workout.Workout) time.Time {
	y, m, d := item.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}
