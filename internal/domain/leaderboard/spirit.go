package leaderboard

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

// SpiritWinner is one weekly spirit award.
type SpiritWinner struct {
	WeekNumber int
	Workout    *workout.Workout
	Athlete    athlete.Athlete
	Notes      string
}

// SpiritWinners lists grants of the spirit point type ordered by week.
// Grants without a known workout sort last.
func SpiritWinners(
	rows []points.AthletePoint,
	spiritTypeID string,
	workouts []workout.Workout,
	roster []athlete.Athlete,
) []SpiritWinner {
	workoutByID := make(map[string]workout.Workout, len(workouts))
	for _, w := range workouts {
		workoutByID[w.ID] = w
	}
	athleteByID := make(map[string]athlete.Athlete, len(roster))
	for _, a := range roster {
		athleteByID[a.ID] = a
	}

	out := make([]SpiritWinner, 0)
	for _, row := range rows {
		if row.PointTypeID != spiritTypeID {
			continue
		}
		winner := SpiritWinner{Notes: row.Notes}
		if a, ok := athleteByID[row.AthleteID]; ok {
			winner.Athlete = a
		} else {
			winner.Athlete = athlete.Athlete{ID: row.AthleteID}
		}
		if row.WorkoutID != nil {
			if w, ok := workoutByID[*row.WorkoutID]; ok {
				w := w
				winner.Workout = &w
				winner.WeekNumber = w.WeekNumber
			}
		}
		out = append(out, winner)
	}

	slices.SortStableFunc(out, func(a, b SpiritWinner) int {
		switch {
		case a.Workout == nil && b.Workout == nil:
			return 0
		case a.Workout == nil:
			return 1
		case b.Workout == nil:
			return -1
		default:
			return cmp.Compare(a.WeekNumber, b.WeekNumber)
		}
	})
	return out
}
