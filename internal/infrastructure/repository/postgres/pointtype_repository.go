package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

type PointTypeRepository struct {
	db *sqlx.DB
}

func NewPointTypeRepository(db *sqlx.DB) *PointTypeRepository {
	return &PointTypeRepository{db: db}
}

func (r *PointTypeRepository) List(ctx context.Context, category *pointtype.Category) ([]pointtype.PointType, error) {
	builder := qb.Select("*").From("point_types").OrderBy("created_at", "id")
	if category != nil {
		builder = builder.Where(qb.Eq("category", string(*category)))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select point types query: %w", err)
	}

	return r.selectPointTypes(ctx, query, args, "select point types")
}

func (r *PointTypeRepository) GetByIDs(ctx context.Context, ids []string) ([]pointtype.PointType, error) {
	if len(ids) == 0 {
		return []pointtype.PointType{}, nil
	}

	query, args, err := qb.Select("*").From("point_types").
		Where(qb.In("id", stringSliceToAny(ids))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select point types by ids query: %w", err)
	}

	return r.selectPointTypes(ctx, query, args, "select point types by ids")
}

func (r *PointTypeRepository) Create(ctx context.Context, item pointtype.PointType) error {
	query, args, err := qb.InsertModel("point_types", pointTypeInsertModel{
		ID:        item.ID,
		Name:      item.Name,
		Category:  string(item.Category),
		Points:    item.Points,
		CreatedAt: timeOrNow(item.CreatedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert point type query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "insert point type")
	}
	return nil
}

func (r *PointTypeRepository) selectPointTypes(ctx context.Context, query string, args []any, op string) ([]pointtype.PointType, error) {
	var rows []pointTypeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, op)
	}

	out := make([]pointtype.PointType, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointtype.PointType{
			ID:        row.ID,
			Name:      row.Name,
			Category:  pointtype.Category(row.Category),
			Points:    nullPoints(row.Points),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
