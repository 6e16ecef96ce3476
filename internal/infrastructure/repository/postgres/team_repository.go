package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, "select teams")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, wrapDBError(err, "get team by id")
	}

	return team.Team{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamTableModel{
		ID:        item.ID,
		Name:      item.Name,
		CreatedAt: timeOrNow(item.CreatedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "insert team")
	}
	return nil
}

func (r *TeamRepository) ListActiveMemberships(ctx context.Context) ([]team.Membership, error) {
	query, args, err := qb.Select("*").From("athlete_teams").
		Where(qb.Eq("is_active", true)).
		OrderBy("team_id", "assigned_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active memberships query: %w", err)
	}

	var rows []athleteTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, "select active memberships")
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Membership{
			ID:         row.ID,
			AthleteID:  row.AthleteID,
			TeamID:     row.TeamID,
			IsActive:   row.IsActive,
			AssignedAt: row.AssignedAt,
		})
	}
	return out, nil
}

func (r *TeamRepository) AssignAthlete(ctx context.Context, membership team.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assign athlete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deactivateQuery, deactivateArgs, err := qb.Update("athlete_teams").
		Set("is_active", false).
		Where(
			qb.Eq("athlete_id", membership.AthleteID),
			qb.Eq("is_active", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate memberships query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return wrapDBError(err, "deactivate memberships")
	}

	insertQuery, insertArgs, err := qb.InsertModel("athlete_teams", athleteTeamTableModel{
		ID:         membership.ID,
		AthleteID:  membership.AthleteID,
		TeamID:     membership.TeamID,
		IsActive:   true,
		AssignedAt: timeOrNow(membership.AssignedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return wrapDBError(err, fmt.Sprintf("insert membership athlete=%s team=%s", membership.AthleteID, membership.TeamID))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign athlete tx: %w", err)
	}
	return nil
}
