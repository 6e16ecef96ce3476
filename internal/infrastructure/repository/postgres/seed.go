package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT (id) DO NOTHING"

// BootstrapSeed loads the demo competition into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, firstWorkoutDate time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM athletes`); err != nil {
		return fmt.Errorf("count athletes for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()

	pointTypes := make([]pointTypeInsertModel, 0)
	for _, item := range memory.SeedPointTypes() {
		pointTypes = append(pointTypes, pointTypeInsertModel{
			ID:        item.ID,
			Name:      item.Name,
			Category:  string(item.Category),
			Points:    item.Points,
			CreatedAt: now,
		})
	}

	teams := make([]teamTableModel, 0)
	for _, item := range memory.SeedTeams() {
		teams = append(teams, teamTableModel{ID: item.ID, Name: item.Name, CreatedAt: now})
	}

	athletes := make([]athleteInsertModel, 0)
	for _, item := range memory.SeedAthletes() {
		athletes = append(athletes, athleteInsertModel{
			ID:        item.ID,
			Name:      item.Name,
			Division:  divisionValue(item.Division),
			Role:      string(item.Role),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	memberships := make([]athleteTeamTableModel, 0)
	for _, item := range memory.SeedMemberships(now) {
		memberships = append(memberships, athleteTeamTableModel{
			ID:         item.ID,
			AthleteID:  item.AthleteID,
			TeamID:     item.TeamID,
			IsActive:   item.IsActive,
			AssignedAt: item.AssignedAt,
		})
	}

	workouts := make([]workoutInsertModel, 0)
	for _, item := range memory.SeedWorkouts(firstWorkoutDate) {
		workouts = append(workouts, workoutInsertModel{
			ID:          item.ID,
			Name:        item.Name,
			WeekNumber:  item.WeekNumber,
			WorkoutDate: item.Date,
			ScoringType: string(item.ScoringType),
			CreatedAt:   now,
		})
	}

	if err := seedRows(ctx, tx, "point_types", pointTypes); err != nil {
		return err
	}
	if err := seedRows(ctx, tx, "teams", teams); err != nil {
		return err
	}
	if err := seedRows(ctx, tx, "athletes", athletes); err != nil {
		return err
	}
	if err := seedRows(ctx, tx, "athlete_teams", memberships); err != nil {
		return err
	}
	if err := seedRows(ctx, tx, "workouts", workouts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedRows[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels(table, rows, seedConflictSuffix)
	if err != nil {
		return fmt.Errorf("build seed %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "seed "+table)
	}
	return nil
}
