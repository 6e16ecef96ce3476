package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type athleteTeamTableModel struct {
	ID         string    `db:"id"`
	AthleteID  string    `db:"athlete_id"`
	TeamID     string    `db:"team_id"`
	IsActive   bool      `db:"is_active"`
	AssignedAt time.Time `db:"assigned_at"`
}
