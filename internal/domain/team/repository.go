package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Create(ctx context.Context, team Team) error
	ListActiveMemberships(ctx context.Context) ([]Membership, error)
	// AssignAthlete makes teamID the athlete's only active membership.
	AssignAthlete(ctx context.Context, membership Membership) error
}
