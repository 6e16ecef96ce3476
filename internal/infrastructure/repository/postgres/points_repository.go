package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	qb "github.com/riskibarqy/fitness-league/internal/platform/querybuilder"
)

const upsertOnceAssignmentQuery = `
INSERT INTO point_assignments (
    id,
    assigner_id,
    assignee_id,
    point_type_id,
    workout_id,
    points,
    notes,
    grant_mode,
    assigned_at
) VALUES (:id, :assigner_id, :assignee_id, :point_type_id, :workout_id, :points, :notes, 'once', :assigned_at)
ON CONFLICT (assignee_id, point_type_id, workout_id) WHERE grant_mode = 'once'
DO UPDATE SET
    assigner_id = EXCLUDED.assigner_id,
    points = EXCLUDED.points,
    notes = EXCLUDED.notes,
    assigned_at = EXCLUDED.assigned_at
RETURNING id`

const upsertOnceAthletePointQuery = `
INSERT INTO athlete_points (
    id,
    point_assignment_id,
    athlete_id,
    point_type_id,
    workout_id,
    points,
    notes,
    grant_mode,
    created_at
) VALUES (:id, :point_assignment_id, :athlete_id, :point_type_id, :workout_id, :points, :notes, 'once', :created_at)
ON CONFLICT (point_assignment_id)
DO UPDATE SET
    points = EXCLUDED.points,
    notes = EXCLUDED.notes
RETURNING *`

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) CreateGrants(ctx context.Context, grants []points.Grant) error {
	if len(grants) == 0 {
		return nil
	}

	assignments := make([]pointAssignmentInsertModel, 0, len(grants))
	athletePoints := make([]athletePointInsertModel, 0, len(grants))
	for _, g := range grants {
		if err := g.Validate(); err != nil {
			return err
		}
		assignments = append(assignments, assignmentInsertModel(g.Assignment))
		athletePoints = append(athletePoints, athletePointInsertModelFrom(g.AthletePoint))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create grants tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	assignmentQuery, assignmentArgs, err := qb.InsertModels("point_assignments", assignments, "")
	if err != nil {
		return fmt.Errorf("build insert point assignments query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, assignmentQuery, assignmentArgs...); err != nil {
		return wrapDBError(err, fmt.Sprintf("insert point assignments count=%d", len(assignments)))
	}

	pointQuery, pointArgs, err := qb.InsertModels("athlete_points", athletePoints, "")
	if err != nil {
		return fmt.Errorf("build insert athlete points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pointQuery, pointArgs...); err != nil {
		return wrapDBError(err, fmt.Sprintf("insert athlete points count=%d", len(athletePoints)))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create grants tx: %w", err)
	}
	return nil
}

func (r *PointsRepository) GrantOnce(ctx context.Context, grant points.Grant) (points.AthletePoint, error) {
	if err := grant.Validate(); err != nil {
		return points.AthletePoint{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return points.AthletePoint{}, fmt.Errorf("begin grant once tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	a := grant.Assignment
	assignmentSQL, assignmentArgs, err := sqlx.Named(upsertOnceAssignmentQuery, map[string]any{
		"id":            a.ID,
		"assigner_id":   a.AssignerID,
		"assignee_id":   a.AssigneeID,
		"point_type_id": a.PointTypeID,
		"workout_id":    a.WorkoutID,
		"points":        a.Points,
		"notes":         nullableString(a.Notes),
		"assigned_at":   timeOrNow(a.AssignedAt),
	})
	if err != nil {
		return points.AthletePoint{}, fmt.Errorf("bind upsert once assignment query: %w", err)
	}
	assignmentSQL = tx.Rebind(assignmentSQL)

	var assignmentID string
	if err := tx.GetContext(ctx, &assignmentID, assignmentSQL, assignmentArgs...); err != nil {
		return points.AthletePoint{}, wrapDBError(err, fmt.Sprintf("upsert once assignment athlete=%s point_type=%s", a.AssigneeID, a.PointTypeID))
	}

	p := grant.AthletePoint
	pointSQL, pointArgs, err := sqlx.Named(upsertOnceAthletePointQuery, map[string]any{
		"id":                  p.ID,
		"point_assignment_id": assignmentID,
		"athlete_id":          p.AthleteID,
		"point_type_id":       p.PointTypeID,
		"workout_id":          p.WorkoutID,
		"points":              p.Points,
		"notes":               nullableString(p.Notes),
		"created_at":          timeOrNow(p.CreatedAt),
	})
	if err != nil {
		return points.AthletePoint{}, fmt.Errorf("bind upsert once athlete point query: %w", err)
	}
	pointSQL = tx.Rebind(pointSQL)

	var row athletePointTableModel
	if err := tx.GetContext(ctx, &row, pointSQL, pointArgs...); err != nil {
		return points.AthletePoint{}, wrapDBError(err, fmt.Sprintf("upsert once athlete point assignment=%s", assignmentID))
	}

	if err := tx.Commit(); err != nil {
		return points.AthletePoint{}, fmt.Errorf("commit grant once tx: %w", err)
	}
	return athletePointFromRow(row), nil
}

func (r *PointsRepository) ListAthletePoints(ctx context.Context, filter points.Filter) ([]points.AthletePoint, error) {
	query, args, err := qb.Select("*").From("athlete_points").
		Where(filterConditions(filter, "athlete_id", false)...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athlete points query: %w", err)
	}

	var rows []athletePointTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, "select athlete points")
	}

	out := make([]points.AthletePoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, athletePointFromRow(row))
	}
	return out, nil
}

func (r *PointsRepository) ListAssignments(ctx context.Context, filter points.Filter) ([]points.Assignment, error) {
	query, args, err := qb.Select("*").From("point_assignments").
		Where(filterConditions(filter, "assignee_id", true)...).
		OrderBy("assigned_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select point assignments query: %w", err)
	}

	return r.selectAssignments(ctx, query, args, "select point assignments")
}

func (r *PointsRepository) GetAssignment(ctx context.Context, assignmentID string) (points.Assignment, bool, error) {
	query, args, err := qb.Select("*").From("point_assignments").
		Where(qb.Eq("id", assignmentID)).
		ToSQL()
	if err != nil {
		return points.Assignment{}, false, fmt.Errorf("build get point assignment query: %w", err)
	}

	var row pointAssignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return points.Assignment{}, false, nil
		}
		return points.Assignment{}, false, wrapDBError(err, "get point assignment")
	}
	return assignmentFromRow(row), true, nil
}

// DeleteAssignment removes the ledger row. The athlete point goes with it
// through ON DELETE CASCADE and any score link is nulled.
func (r *PointsRepository) DeleteAssignment(ctx context.Context, assignmentID string) error {
	query, args, err := qb.DeleteFrom("point_assignments").
		Where(qb.Eq("id", assignmentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete point assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, fmt.Sprintf("delete point assignment=%s", assignmentID))
	}
	return nil
}

func (r *PointsRepository) ListOrphanedAssignments(ctx context.Context) ([]points.Assignment, error) {
	query, args, err := qb.Select("pa.*").From("point_assignments pa").
		Join("LEFT JOIN athlete_points ap ON ap.point_assignment_id = pa.id").
		Where(qb.IsNull("ap.id")).
		OrderBy("pa.assigned_at", "pa.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select orphaned assignments query: %w", err)
	}

	return r.selectAssignments(ctx, query, args, "select orphaned assignments")
}

func (r *PointsRepository) RestoreAthletePoint(ctx context.Context, point points.AthletePoint) error {
	query, args, err := qb.InsertModel("athlete_points", athletePointInsertModelFrom(point), "ON CONFLICT (point_assignment_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build restore athlete point query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, fmt.Sprintf("restore athlete point assignment=%s", point.AssignmentID))
	}
	return nil
}

func (r *PointsRepository) selectAssignments(ctx context.Context, query string, args []any, op string) ([]points.Assignment, error) {
	var rows []pointAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError(err, op)
	}

	out := make([]points.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignmentFromRow(row))
	}
	return out, nil
}

func filterConditions(filter points.Filter, athleteColumn string, withAssigner bool) []qb.Condition {
	conditions := make([]qb.Condition, 0, 4)
	if filter.AthleteID != "" {
		conditions = append(conditions, qb.Eq(athleteColumn, filter.AthleteID))
	}
	if filter.WorkoutID != "" {
		conditions = append(conditions, qb.Eq("workout_id", filter.WorkoutID))
	}
	if filter.PointTypeID != "" {
		conditions = append(conditions, qb.Eq("point_type_id", filter.PointTypeID))
	}
	if withAssigner && filter.AssignerID != "" {
		conditions = append(conditions, qb.Eq("assigner_id", filter.AssignerID))
	}
	return conditions
}

func assignmentInsertModel(a points.Assignment) pointAssignmentInsertModel {
	return pointAssignmentInsertModel{
		ID:          a.ID,
		AssignerID:  a.AssignerID,
		AssigneeID:  a.AssigneeID,
		PointTypeID: a.PointTypeID,
		WorkoutID:   a.WorkoutID,
		Points:      a.Points,
		Notes:       nullableString(a.Notes),
		GrantMode:   string(a.Mode),
		AssignedAt:  timeOrNow(a.AssignedAt),
	}
}

func athletePointInsertModelFrom(p points.AthletePoint) athletePointInsertModel {
	return athletePointInsertModel{
		ID:                p.ID,
		PointAssignmentID: p.AssignmentID,
		AthleteID:         p.AthleteID,
		PointTypeID:       p.PointTypeID,
		WorkoutID:         p.WorkoutID,
		Points:            p.Points,
		Notes:             nullableString(p.Notes),
		GrantMode:         string(p.Mode),
		CreatedAt:         timeOrNow(p.CreatedAt),
	}
}

func assignmentFromRow(row pointAssignmentTableModel) points.Assignment {
	return points.Assignment{
		ID:          row.ID,
		AssignerID:  row.AssignerID,
		AssigneeID:  row.AssigneeID,
		PointTypeID: row.PointTypeID,
		WorkoutID:   nullStringPtr(row.WorkoutID),
		Points:      nullPoints(row.Points),
		Notes:       nullStringValue(row.Notes),
		Mode:        points.GrantMode(row.GrantMode),
		AssignedAt:  row.AssignedAt,
	}
}

func athletePointFromRow(row athletePointTableModel) points.AthletePoint {
	return points.AthletePoint{
		ID:           row.ID,
		AssignmentID: row.PointAssignmentID,
		AthleteID:    row.AthleteID,
		PointTypeID:  row.PointTypeID,
		WorkoutID:    nullStringPtr(row.WorkoutID),
		Points:       nullPoints(row.Points),
		Notes:        nullStringValue(row.Notes),
		Mode:         points.GrantMode(row.GrantMode),
		CreatedAt:    row.CreatedAt,
	}
}
