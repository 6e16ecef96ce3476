package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

type WorkoutRepository struct {
	db *sqlx.DB
}

func NewWorkoutRepository(db *sqlx.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) List(ctx context.Context) ([]workout.Workout, error) {
	query, args, err := qb.Select("*").From("workouts").
		OrderBy("week_number", "workout_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select workouts query: %w", err)
	}

	return r.selectWorkouts(ctx, query, args, "select workouts")
}

func (r *WorkoutRepository) ListByWeek(ctx context.Context, weekNumber int) ([]workout.Workout, error) {
	query, args, err := qb.Select("*").From("workouts").
		Where(qb.Eq("week_number", weekNumber)).
		OrderBy("workout_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select workouts by week query: %w", err)
	}

	return r.selectWorkouts(ctx, query, args, fmt.Sprintf("select workouts week=%d", weekNumber))
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID string) (workout.Workout, bool, error) {
	query, args, err := qb.Select("*").From("workouts").
		Where(qb.Eq("id", workoutID)).
		ToSQL()
	if err != nil {
		return workout.Workout{}, false, fmt.Errorf("build get workout by id query: %w", err)
	}

	var row workoutTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return workout.Workout{}, false, nil
		}
		return workout.Workout{}, false, wrapDBError(err, "get workout by id")
	}

	return workoutFromRow(row), true, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, item workout.Workout) error {
	query, args, err := qb.InsertModel("workouts", workoutInsertModel{
		ID:            item.ID,
		Name:          item.Name,
		WeekNumber:    item.WeekNumber,
		WorkoutDate:   item.Date,
		ScoringType:   string(item.ScoringType),
		Description:   nullableString(item.Description),
		Details:       nullableString(item.Details),
		StandardsLink: nullableString(item.StandardsLink),
		CreatedAt:     timeOrNow(item.CreatedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert workout query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "insert workout")
	}
	return nil
}

func (r *WorkoutRepository) selectWorkouts(ctx context.Context, query string, args []any, op string) ([]workout.Workout, error) {
	var rows []workoutTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, op)
	}

	out := make([]workout.Workout, 0, len(rows))
	for _, row := range rows {
		out = append(out, workoutFromRow(row))
	}
	return out, nil
}

func workoutFromRow(row workoutTableModel) workout.Workout {
	return workout.Workout{
		ID:            row.ID,
		Name:          row.Name,
		WeekNumber:    row.WeekNumber,
		Date:          row.WorkoutDate,
		ScoringType:   workout.ScoringType(row.ScoringType),
		Description:   nullStringValue(row.Description),
		Details:       nullStringValue(row.Details),
		StandardsLink: nullStringValue(row.StandardsLink),
		CreatedAt:     row.CreatedAt,
	}
}
