package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

type AthleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func (r *AthleteRepository) List(ctx context.Context) ([]athlete.Athlete, error) {
	query, args, err := qb.Select("*").From("athletes").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athletes query: %w", err)
	}

	return r.selectAthletes(ctx, query, args, "select athletes")
}

func (r *AthleteRepository) ListUnassigned(ctx context.Context) ([]athlete.Athlete, error) {
	query, args, err := qb.Select("*").From("athletes").
		Where(qb.IsNull("user_id")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select unassigned athletes query: %w", err)
	}

	return r.selectAthletes(ctx, query, args, "select unassigned athletes")
}

func (r *AthleteRepository) GetByID(ctx context.Context, athleteID string) (athlete.Athlete, bool, error) {
	query, args, err := qb.Select("*").From("athletes").
		Where(qb.Eq("id", athleteID)).
		ToSQL()
	if err != nil {
		return athlete.Athlete{}, false, fmt.Errorf("build get athlete by id query: %w", err)
	}

	return r.getAthlete(ctx, query, args, "get athlete by id")
}

func (r *AthleteRepository) GetByUserID(ctx context.Context, userID string) (athlete.Athlete, bool, error) {
	query, args, err := qb.Select("*").From("athletes").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return athlete.Athlete{}, false, fmt.Errorf("build get athlete by user query: %w", err)
	}

	return r.getAthlete(ctx, query, args, "get athlete by user")
}

func (r *AthleteRepository) Create(ctx context.Context, athletes []athlete.Athlete) error {
	if len(athletes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]athleteInsertModel, 0, len(athletes))
	for _, item := range athletes {
		models = append(models, athleteInsertModel{
			ID:         item.ID,
			UserID:     nullableString(item.UserID),
			Name:       item.Name,
			Email:      nullableString(item.Email),
			CrossfitID: nullableString(item.CrossfitID),
			Division:   divisionValue(item.Division),
			Role:       string(item.Role),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	query, args, err := qb.InsertModels("athletes", models, "")
	if err != nil {
		return fmt.Errorf("build insert athletes query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "insert athletes")
	}

	return nil
}

func (r *AthleteRepository) UpdateProfile(ctx context.Context, athleteID string, profile athlete.Profile) error {
	query, args, err := qb.Update("athletes").
		Set("name", profile.Name).
		Set("email", nullableString(profile.Email)).
		Set("crossfit_id", nullableString(profile.CrossfitID)).
		Set("division", divisionValue(profile.Division)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", athleteID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update athlete profile query: %w", err)
	}

	return r.execOne(ctx, query, args, "update athlete profile", athleteID)
}

func (r *AthleteRepository) UpdateRole(ctx context.Context, athleteID string, role athlete.Role) error {
	query, args, err := qb.Update("athletes").
		Set("athlete_type", string(role)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", athleteID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update athlete role query: %w", err)
	}

	return r.execOne(ctx, query, args, "update athlete role", athleteID)
}

// Claim links an unclaimed athlete to the user. The user_id IS NULL guard
// keeps two concurrent claims from both succeeding.
func (r *AthleteRepository) Claim(ctx context.Context, athleteID, userID string, profile athlete.Profile) error {
	query, args, err := qb.Update("athletes").
		Set("user_id", userID).
		Set("name", profile.Name).
		Set("email", nullableString(profile.Email)).
		Set("crossfit_id", nullableString(profile.CrossfitID)).
		Set("division", divisionValue(profile.Division)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", athleteID),
			qb.IsNull("user_id"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build claim athlete query: %w", err)
	}

	return r.execOne(ctx, query, args, "claim athlete", athleteID)
}

func (r *AthleteRepository) selectAthletes(ctx context.Context, query string, args []any, op string) ([]athlete.Athlete, error) {
	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, op)
	}

	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, athleteFromRow(row))
	}
	return out, nil
}

func (r *AthleteRepository) getAthlete(ctx context.Context, query string, args []any, op string) (athlete.Athlete, bool, error) {
	var row athleteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return athlete.Athlete{}, false, nil
		}
		return athlete.Athlete{}, false, wrapDBError(err, op)
	}

	return athleteFromRow(row), true, nil
}

func (r *AthleteRepository) execOne(ctx context.Context, query string, args []any, op, athleteID string) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(err, op)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: athlete=%s not updated", op, athleteID)
	}
	return nil
}

func athleteFromRow(row athleteTableModel) athlete.Athlete {
	item := athlete.Athlete{
		ID:         row.ID,
		UserID:     nullStringValue(row.UserID),
		Name:       row.Name,
		Email:      nullStringValue(row.Email),
		CrossfitID: nullStringValue(row.CrossfitID),
		Role:       athlete.Role(row.Role),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.Division.Valid {
		division := athlete.Division(row.Division.String)
		item.Division = &division
	}
	return item
}

func divisionValue(division *athlete.Division) *string {
	if division == nil {
		return nil
	}
	v := string(*division)
	return &v
}
