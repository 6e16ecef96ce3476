package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fitness-league/internal/domain/team"
)

type TeamRepository struct {
	mu          sync.RWMutex
	items       map[string]team.Team
	orders      []string
	memberships []team.Membership
}

func NewTeamRepository(teams []team.Team, memberships []team.Membership) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))
	for _, t := range teams {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TeamRepository{
		items:       items,
		orders:      orders,
		memberships: append([]team.Membership(nil), memberships...),
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return item, true, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("team %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *TeamRepository) ListActiveMemberships(_ context.Context) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Membership, 0, len(r.memberships))
	for _, m := range r.memberships {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *TeamRepository) AssignAthlete(_ context.Context, membership team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[membership.TeamID]; !ok {
		return fmt.Errorf("team %s not found", membership.TeamID)
	}
	for i := range r.memberships {
		if r.memberships[i].AthleteID == membership.AthleteID {
			r.memberships[i].IsActive = false
		}
	}
	membership.IsActive = true
	r.memberships = append(r.memberships, membership)
	return nil
}
