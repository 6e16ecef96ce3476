package leaderboard

import (
	"slices"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

// Unassigned labels athletes without a division.
const Unassigned = "unassigned"

// DivisionGroup holds the athletes of one division. Ranking is set only when
// a workout is selected.
type DivisionGroup struct {
	Division string
	Athletes []athlete.Athlete
	Ranking  []RankedScore
}

func DivisionName(d *athlete.Division) string {
	if d == nil || strings.TrimSpace(string(*d)) == "" {
		return Unassigned
	}
	return string(*d)
}

// CompareDivisions puts names containing "open" first, unassigned last and
// everything else alphabetically.
func CompareDivisions(a, b string) int {
	if ra, rb := divisionTier(a), divisionTier(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(a, b)
}

func divisionTier(name string) int {
	switch {
	case name == Unassigned:
		return 2
	case strings.Contains(strings.ToLower(name), "open"):
		return 0
	default:
		return 1
	}
}

// GroupByDivision partitions the roster, keeping roster order inside a group.
func GroupByDivision(roster []athlete.Athlete) []DivisionGroup {
	index := make(map[string]int)
	out := make([]DivisionGroup, 0)
	for _, a := range roster {
		name := DivisionName(a.Division)
		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			out = append(out, DivisionGroup{Division: name})
		}
		out[pos].Athletes = append(out[pos].Athletes, a)
	}

	slices.SortFunc(out, func(a, b DivisionGroup) int {
		return CompareDivisions(a.Division, b.Division)
	})
	return out
}

// RankDivisions fills each group's ranking for the selected workout.
func RankDivisions(groups []DivisionGroup, w workout.Workout, scores []score.Score) []DivisionGroup {
	out := slices.Clone(groups)
	for i := range out {
		entries := EntriesForDivision(out[i].Athletes, scores, "")
		out[i].Ranking = RankScores(w.ScoringType, entries)
	}
	return out
}
