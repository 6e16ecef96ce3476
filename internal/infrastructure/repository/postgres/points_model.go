package postgres

import (
	"database/sql"
	"time"
)

type pointAssignmentTableModel struct {
	ID          string         `db:"id"`
	AssignerID  string         `db:"assigner_id"`
	AssigneeID  string         `db:"assignee_id"`
	PointTypeID string         `db:"point_type_id"`
	WorkoutID   sql.NullString `db:"workout_id"`
	Points      sql.NullInt64  `db:"points"`
	Notes       sql.NullString `db:"notes"`
	GrantMode   string         `db:"grant_mode"`
	AssignedAt  time.Time      `db:"assigned_at"`
}

type athletePointTableModel struct {
	ID                string         `db:"id"`
	PointAssignmentID string         `db:"point_assignment_id"`
	AthleteID         string         `db:"athlete_id"`
	PointTypeID       string         `db:"point_type_id"`
	WorkoutID         sql.NullString `db:"workout_id"`
	Points            sql.NullInt64  `db:"points"`
	Notes             sql.NullString `db:"notes"`
	GrantMode         string         `db:"grant_mode"`
	CreatedAt         time.Time      `db:"created_at"`
}

type pointAssignmentInsertModel struct {
	ID          string    `db:"id"`
	AssignerID  string    `db:"assigner_id"`
	AssigneeID  string    `db:"assignee_id"`
	PointTypeID string    `db:"point_type_id"`
	WorkoutID   *string   `db:"workout_id"`
	Points      int       `db:"points"`
	Notes       *string   `db:"notes"`
	GrantMode   string    `db:"grant_mode"`
	AssignedAt  time.Time `db:"assigned_at"`
}

type athletePointInsertModel struct {
	ID                string    `db:"id"`
	PointAssignmentID string    `db:"point_assignment_id"`
	AthleteID         string    `db:"athlete_id"`
	PointTypeID       string    `db:"point_type_id"`
	WorkoutID         *string   `db:"workout_id"`
	Points            int       `db:"points"`
	Notes             *string   `db:"notes"`
	GrantMode         string    `db:"grant_mode"`
	CreatedAt         time.Time `db:"created_at"`
}
