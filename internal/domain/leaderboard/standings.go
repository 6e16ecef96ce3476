package leaderboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/team"
)

// TeamStanding is a team's summed points over its active members.
type TeamStanding struct {
	Team    team.Team
	Members int
	Points  int
}

// TieBreak orders teams with equal totals. Nil keeps input order.
type TieBreak func(a, b TeamStanding) int

const (
	TieBreakNone = "none"
	TieBreakName = "name"
)

// ByName breaks ties alphabetically, case-insensitive.
func ByName(a, b TeamStanding) int {
	return cmp.Compare(strings.ToLower(a.Team.Name), strings.ToLower(b.Team.Name))
}

// ParseTieBreak resolves a configured tie-break name.
func ParseTieBreak(v string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", TieBreakNone:
		return nil, nil
	case TieBreakName:
		return ByName, nil
	default:
		return nil, fmt.Errorf("unknown tie break %q", v)
	}
}

// TeamStandings sums athlete totals per team over active memberships. Every
// team appears, sorted by total descending.
func TeamStandings(teams []team.Team, memberships []team.Membership, totals map[string]int, tieBreak TieBreak) []TeamStanding {
	members := team.ActiveMembers(memberships)

	out := make([]TeamStanding, 0, len(teams))
	for _, t := range teams {
		standing := TeamStanding{Team: t, Members: len(members[t.ID])}
		for _, athleteID := range members[t.ID] {
			standing.Points += totals[athleteID]
		}
		out = append(out, standing)
	}

	slices.SortStableFunc(out, func(a, b TeamStanding) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if tieBreak != nil {
			return tieBreak(a, b)
		}
		return 0
	})
	return out
}
