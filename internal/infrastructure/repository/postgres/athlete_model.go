package postgres

import (
	"database/sql"
	"time"
)

type athleteTableModel struct {
	ID         string         `db:"id"`
	UserID     sql.NullString `db:"user_id"`
	Name       string         `db:"name"`
	Email      sql.NullString `db:"email"`
	CrossfitID sql.NullString `db:"crossfit_id"`
	Division   sql.NullString `db:"division"`
	Role       string         `db:"athlete_type"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type athleteInsertModel struct {
	ID         string    `db:"id"`
	UserID     *string   `db:"user_id"`
	Name       string    `db:"name"`
	Email      *string   `db:"email"`
	CrossfitID *string   `db:"crossfit_id"`
	Division   *string   `db:"division"`
	Role       string    `db:"athlete_type"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
