package leaderboard

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
)

// AthleteTotal is the summed points of one roster athlete.
type AthleteTotal struct {
	AthleteID string
	Name      string
	Division  *athlete.Division
	Points    int
}

// SumByAthlete totals point values per athlete id. Order of rows does not matter.
func SumByAthlete(rows []points.AthletePoint) map[string]int {
	out := make(map[string]int)
	for _, row := range rows {
		out[row.AthleteID] += row.Points
	}
	return out
}

// Aggregate returns exactly one total per roster athlete in roster order.
// Athletes without point rows get zero.
func Aggregate(roster []athlete.Athlete, rows []points.AthletePoint) []AthleteTotal {
	sums := SumByAthlete(rows)
	out := make([]AthleteTotal, 0, len(roster))
	for _, a := range roster {
		out = append(out, AthleteTotal{
			AthleteID: a.ID,
			Name:      a.Name,
			Division:  a.Division,
			Points:    sums[a.ID],
		})
	}
	return out
}

// TopAthletes sorts totals by points descending then name, and keeps at most
// limit rows. A non-positive limit keeps all.
func TopAthletes(totals []AthleteTotal, limit int) []AthleteTotal {
	out := slices.Clone(totals)
	slices.SortStableFunc(out, func(a, b AthleteTotal) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
