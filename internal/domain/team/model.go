package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a competition squad athletes are assigned to.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Membership relates one athlete to one team. Only active memberships
// count toward a team's roster.
type Membership struct {
	ID         string
	AthleteID  string
	TeamID     string
	IsActive   bool
	AssignedAt time.Time
}

// ActiveMembers groups active memberships by team id, keeping the first
// occurrence of each athlete per team.
func ActiveMembers(memberships []Membership) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]struct{}, len(memberships))
	for _, m := range memberships {
		if !m.IsActive || m.TeamID == "" || m.AthleteID == "" {
			continue
		}
		key := m.TeamID + "|" + m.AthleteID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out[m.TeamID] = append(out[m.TeamID], m.AthleteID)
	}

	return out
}

// TeamOf returns the team id of the athlete's first active membership.
func TeamOf(memberships []Membership, athleteID string) (string, bool) {
	for _, m := range memberships {
		if m.IsActive && m.AthleteID == athleteID && m.TeamID != "" {
			return m.TeamID, true
		}
	}
	return "", false
}
