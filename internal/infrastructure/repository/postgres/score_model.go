package postgres

import (
	"database/sql"
	"time"
)

type scoreTableModel struct {
	ID             int64          `db:"id"`
	WorkoutID      string         `db:"workout_id"`
	AthleteID      string         `db:"athlete_id"`
	Score          string         `db:"score"`
	Notes          sql.NullString `db:"notes"`
	AthletePointID sql.NullString `db:"athlete_point_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
