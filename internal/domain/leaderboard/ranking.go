package leaderboard

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

// ScoreEntry is one athlete's result for a workout. Score is nil when nothing was logged.
type ScoreEntry struct {
	Athlete athlete.Athlete
	Score   *score.Score
}

func (e ScoreEntry) HasScore() bool {
	return e.Score != nil
}

// RankedScore is a ranking row with its parsed comparison value.
type RankedScore struct {
	Athlete athlete.Athlete
	Score   *score.Score
	Value   float64
}

// ValueOrder compares two parsed score values, negative when a ranks first.
type ValueOrder func(a, b float64) int

func Ascending(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func Descending(a, b float64) int {
	return Ascending(b, a)
}

// Reverse flips the direction of an order.
func (o ValueOrder) Reverse() ValueOrder {
	return func(a, b float64) int { return o(b, a) }
}

// OrderFor returns the ranking direction for a scoring type.
func OrderFor(scoringType workout.ScoringType) ValueOrder {
	if scoringType.LowerIsBetter() {
		return Ascending
	}
	return Descending
}

// ParseTime converts SS, MM:SS or HH:MM:SS into seconds. Components are not
// normalized, so "75:30" is 75 minutes 30 seconds. Bad components count as zero,
// and a value with more than three components is not a time at all.
func ParseTime(raw string) float64 {
	value := strings.TrimSpace(raw)
	if !strings.Contains(value, ":") {
		return parseNumber(value)
	}

	parts := strings.Split(value, ":")
	if len(parts) > maxTimeComponents {
		return 0
	}

	total := 0.0
	for _, part := range parts {
		total = total*60 + parseComponent(part)
	}
	return total
}

const maxTimeComponents = 3

// parseComponent keeps magnitudes beyond int64 as floats so a huge component
// stays huge instead of wrapping.
func parseComponent(part string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	return n
}

// ParseValue parses a raw score according to the workout scoring type.
func ParseValue(scoringType workout.ScoringType, raw string) float64 {
	if scoringType == workout.ScoringTime {
		return ParseTime(raw)
	}
	return parseNumber(strings.TrimSpace(raw))
}

func parseNumber(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// RankScores orders entries for the scoring type. Entries without a score
// always come last; ties keep input order.
func RankScores(scoringType workout.ScoringType, entries []ScoreEntry) []RankedScore {
	return RankScoresBy(entries, scoringType, OrderFor(scoringType))
}

// RankScoresBy ranks with an explicit value order.
func RankScoresBy(entries []ScoreEntry, scoringType workout.ScoringType, order ValueOrder) []RankedScore {
	out := make([]RankedScore, 0, len(entries))
	for _, entry := range entries {
		row := RankedScore{Athlete: entry.Athlete, Score: entry.Score}
		if entry.Score != nil {
			row.Value = ParseValue(scoringType, entry.Score.Value)
		}
		out = append(out, row)
	}

	slices.SortStableFunc(out, func(a, b RankedScore) int {
		switch {
		case a.Score == nil && b.Score == nil:
			return 0
		case a.Score == nil:
			return 1
		case b.Score == nil:
			return -1
		default:
			return order(a.Value, b.Value)
		}
	})
	return out
}

// EntriesForDivision joins a roster with logged scores, keeping athletes of
// one division. An empty division keeps everyone.
func EntriesForDivision(roster []athlete.Athlete, scores []score.Score, division string) []ScoreEntry {
	byAthlete := make(map[string]score.Score, len(scores))
	for _, item := range scores {
		byAthlete[item.AthleteID] = item
	}

	out := make([]ScoreEntry, 0, len(roster))
	for _, a := range roster {
		if division != "" && DivisionName(a.Division) != division {
			continue
		}
		entry := ScoreEntry{Athlete: a}
		if item, ok := byAthlete[a.ID]; ok {
			item := item
			entry.Score = &item
		}
		out = append(out, entry)
	}
	return out
}
