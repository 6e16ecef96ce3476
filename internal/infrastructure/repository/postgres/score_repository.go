package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

const upsertScoreQuery = `
INSERT INTO athlete_score (
    workout_id,
    athlete_id,
    score,
    notes,
    athlete_point_id,
    created_at,
    updated_at
) VALUES (:workout_id, :athlete_id, :score, :notes, :athlete_point_id, :now, :now)
ON CONFLICT (workout_id, athlete_id)
DO UPDATE SET
    score = EXCLUDED.score,
    notes = EXCLUDED.notes,
    athlete_point_id = COALESCE(EXCLUDED.athlete_point_id, athlete_score.athlete_point_id),
    updated_at = EXCLUDED.updated_at
RETURNING *`

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) GetByAthleteAndWorkout(ctx context.Context, athleteID, workoutID string) (score.Score, bool, error) {
	query, args, err := qb.Select("*").From("athlete_score").
		Where(
			qb.Eq("athlete_id", athleteID),
			qb.Eq("workout_id", workoutID),
		).
		ToSQL()
	if err != nil {
		return score.Score{}, false, fmt.Errorf("build get score query: %w", err)
	}

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return score.Score{}, false, nil
		}
		return score.Score{}, false, wrapDBError(err, "get score")
	}

	return scoreFromRow(row), true, nil
}

func (r *ScoreRepository) ListByWorkout(ctx context.Context, workoutID string) ([]score.Score, error) {
	query, args, err := qb.Select("*").From("athlete_score").
		Where(qb.Eq("workout_id", workoutID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scores by workout query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("select scores workout=%s", workoutID))
	}

	out := make([]score.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreFromRow(row))
	}
	return out, nil
}

func (r *ScoreRepository) Upsert(ctx context.Context, item score.Score) (score.Score, error) {
	query, args, err := sqlx.Named(upsertScoreQuery, map[string]any{
		"workout_id":       item.WorkoutID,
		"athlete_id":       item.AthleteID,
		"score":            item.Value,
		"notes":            nullableString(item.Notes),
		"athlete_point_id": item.AthletePointID,
		"now":              time.Now().UTC(),
	})
	if err != nil {
		return score.Score{}, fmt.Errorf("bind upsert score query: %w", err)
	}
	query = r.db.Rebind(query)

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return score.Score{}, wrapDBError(err, fmt.Sprintf("upsert score athlete=%s workout=%s", item.AthleteID, item.WorkoutID))
	}

	return scoreFromRow(row), nil
}

func scoreFromRow(row scoreTableModel) score.Score {
	return score.Score{
		ID:             row.ID,
		WorkoutID:      row.WorkoutID,
		AthleteID:      row.AthleteID,
		Value:          row.Score,
		Notes:          nullStringValue(row.Notes),
		AthletePointID: nullStringPtr(row.AthletePointID),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
