package points

import "context"

// Repository describes ledger and projection persistence needs from use cases.
type Repository interface {
	// CreateGrants appends every grant in one transaction.
	CreateGrants(ctx context.Context, grants []Grant) error
	// GrantOnce upserts the grant keyed on (athlete, point type, workout) and
	// returns the stored projection, whose id is stable across repeats.
	GrantOnce(ctx context.Context, grant Grant) (AthletePoint, error)
	ListAthletePoints(ctx context.Context, filter Filter) ([]AthletePoint, error)
	ListAssignments(ctx context.Context, filter Filter) ([]Assignment, error)
	GetAssignment(ctx context.Context, assignmentID string) (Assignment, bool, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
	// ListOrphanedAssignments returns assignments that have no athlete point row.
	ListOrphanedAssignments(ctx context.Context) ([]Assignment, error)
	RestoreAthletePoint(ctx context.Context, point AthletePoint) error
}
