package athlete

import "context"

// Repository describes athlete persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Athlete, error)
	ListUnassigned(ctx context.Context) ([]Athlete, error)
	GetByID(ctx context.Context, athleteID string) (Athlete, bool, error)
	GetByUserID(ctx context.Context, userID string) (Athlete, bool, error)
	Create(ctx context.Context, athletes []Athlete) error
	UpdateProfile(ctx context.Context, athleteID string, profile Profile) error
	UpdateRole(ctx context.Context, athleteID string, role Role) error
	Claim(ctx context.Context, athleteID, userID string, profile Profile) error
}
