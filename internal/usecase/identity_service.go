package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/user"
)

// IdentityService resolves an authenticated principal to its athlete profile
// once per request.
type IdentityService struct {
	athleteRepo athlete.Repository
}

func NewIdentityService(athleteRepo athlete.Repository) *IdentityService {
	return &IdentityService{athleteRepo: athleteRepo}
}

func (s *IdentityService) Resolve(ctx context.Context, principal user.Principal) (athlete.Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Resolve")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return athlete.Identity{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, exists, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		return athlete.Identity{}, fmt.Errorf("get athlete by user id: %w", err)
	}
	if !exists {
		return athlete.Identity{}, fmt.Errorf("%w: no athlete profile for user=%s", ErrNotFound, userID)
	}

	return athlete.Identity{UserID: userID, Athlete: item}, nil
}

func requireAdmin(identity athlete.Identity) error {
	if strings.TrimSpace(identity.AthleteID()) == "" {
		return fmt.Errorf("%w: identity is not resolved", ErrUnauthorized)
	}
	if !identity.Athlete.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

func requireAthlete(identity athlete.Identity) error {
	if strings.TrimSpace(identity.AthleteID()) == "" {
		return fmt.Errorf("%w: identity is not resolved", ErrUnauthorized)
	}
	return nil
}

// uniqueIDs trims, drops empties and removes duplicates keeping first occurrence.
func uniqueIDs(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func optionalID(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
