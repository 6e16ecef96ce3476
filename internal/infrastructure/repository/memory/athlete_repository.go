package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
)

type AthleteRepository struct {
	mu     sync.RWMutex
	items  map[string]athlete.Athlete
	orders []string
}

func NewAthleteRepository(athletes []athlete.Athlete) *AthleteRepository {
	items := make(map[string]athlete.Athlete, len(athletes))
	orders := make([]string, 0, len(athletes))
	for _, a := range athletes {
		items[a.ID] = cloneAthlete(a)
		orders = append(orders, a.ID)
	}

	return &AthleteRepository{items: items, orders: orders}
}

func (r *AthleteRepository) List(_ context.Context) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]athlete.Athlete, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneAthlete(r.items[id]))
	}
	return out, nil
}

func (r *AthleteRepository) ListUnassigned(_ context.Context) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]athlete.Athlete, 0)
	for _, id := range r.orders {
		if item := r.items[id]; item.IsUnassigned() {
			out = append(out, cloneAthlete(item))
		}
	}
	return out, nil
}

func (r *AthleteRepository) GetByID(_ context.Context, athleteID string) (athlete.Athlete, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[athleteID]
	if !ok {
		return athlete.Athlete{}, false, nil
	}
	return cloneAthlete(item), true, nil
}

func (r *AthleteRepository) GetByUserID(_ context.Context, userID string) (athlete.Athlete, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if item := r.items[id]; userID != "" && item.UserID == userID {
			return cloneAthlete(item), true, nil
		}
	}
	return athlete.Athlete{}, false, nil
}

func (r *AthleteRepository) Create(_ context.Context, athletes []athlete.Athlete) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range athletes {
		if _, ok := r.items[a.ID]; ok {
			return fmt.Errorf("athlete %s already exists", a.ID)
		}
	}
	for _, a := range athletes {
		r.items[a.ID] = cloneAthlete(a)
		r.orders = append(r.orders, a.ID)
	}
	return nil
}

func (r *AthleteRepository) UpdateProfile(_ context.Context, athleteID string, profile athlete.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[athleteID]
	if !ok {
		return fmt.Errorf("athlete %s not found", athleteID)
	}
	applyProfile(&item, profile)
	r.items[athleteID] = item
	return nil
}

func (r *AthleteRepository) UpdateRole(_ context.Context, athleteID string, role athlete.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[athleteID]
	if !ok {
		return fmt.Errorf("athlete %s not found", athleteID)
	}
	item.Role = role
	item.UpdatedAt = time.Now().UTC()
	r.items[athleteID] = item
	return nil
}

func (r *AthleteRepository) Claim(_ context.Context, athleteID, userID string, profile athlete.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[athleteID]
	if !ok {
		return fmt.Errorf("athlete %s not found", athleteID)
	}
	if !item.IsUnassigned() {
		return fmt.Errorf("athlete %s is already claimed", athleteID)
	}
	item.UserID = userID
	applyProfile(&item, profile)
	r.items[athleteID] = item
	return nil
}

func applyProfile(item *athlete.Athlete, profile athlete.Profile) {
	item.Name = profile.Name
	item.Email = profile.Email
	item.CrossfitID = profile.CrossfitID
	item.Division = cloneDivision(profile.Division)
	item.UpdatedAt = time.Now().UTC()
}

func cloneAthlete(a athlete.Athlete) athlete.Athlete {
	copied := a
	copied.Division = cloneDivision(a.Division)
	return copied
}

func cloneDivision(d *athlete.Division) *athlete.Division {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
