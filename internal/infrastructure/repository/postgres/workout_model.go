package postgres

import (
	"database/sql"
	"time"
)

type workoutTableModel struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	WeekNumber    int            `db:"week_number"`
	WorkoutDate   time.Time      `db:"workout_date"`
	ScoringType   string         `db:"scoring_type"`
	Description   sql.NullString `db:"description"`
	Details       sql.NullString `db:"details"`
	StandardsLink sql.NullString `db:"standards_and_score_link"`
	CreatedAt     time.Time      `db:"created_at"`
}

type workoutInsertModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	WeekNumber    int       `db:"week_number"`
	WorkoutDate   time.Time `db:"workout_date"`
	ScoringType   string    `db:"scoring_type"`
	Description   *string   `db:"description"`
	Details       *string   `db:"details"`
	StandardsLink *string   `db:"standards_and_score_link"`
	CreatedAt     time.Time `db:"created_at"`
}
