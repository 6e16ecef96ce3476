package leaderboard

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

// TeamCompletion is one team's participation in one workout.
type TeamCompletion struct {
	Team      team.Team
	WorkoutID string
	Completed int
	Total     int
	Points    int
}

// Ratio is Completed/Total, or zero for a team without members.
func (c TeamCompletion) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

// WorkoutCompletion groups team completion rows under their workout.
type WorkoutCompletion struct {
	Workout workout.Workout
	Teams   []TeamCompletion
}

// CompletionForWorkout counts, per team, distinct active members holding a
// completion-category point row for the workout, and sums those rows.
func CompletionForWorkout(
	w workout.Workout,
	teams []team.Team,
	memberships []team.Membership,
	rows []points.AthletePoint,
	types map[string]pointtype.PointType,
) WorkoutCompletion {
	members := team.ActiveMembers(memberships)

	completedBy := make(map[string]int)
	for _, row := range rows {
		if row.WorkoutID == nil || *row.WorkoutID != w.ID {
			continue
		}
		pt, ok := types[row.PointTypeID]
		if !ok || !pt.Category.CountsAsCompletion() {
			continue
		}
		completedBy[row.AthleteID] += row.Points
	}

	out := WorkoutCompletion{Workout: w, Teams: make([]TeamCompletion, 0, len(teams))}
	for _, t := range teams {
		item := TeamCompletion{Team: t, WorkoutID: w.ID, Total: len(members[t.ID])}
		for _, athleteID := range members[t.ID] {
			sum, ok := completedBy[athleteID]
			if !ok {
				continue
			}
			item.Completed++
			item.Points += sum
		}
		out.Teams = append(out.Teams, item)
	}
	return out
}

// CompletionByWorkout computes completion for every workout ordered by week.
func CompletionByWorkout(
	workouts []workout.Workout,
	teams []team.Team,
	memberships []team.Membership,
	rows []points.AthletePoint,
	types map[string]pointtype.PointType,
) []WorkoutCompletion {
	ordered := slices.Clone(workouts)
	slices.SortStableFunc(ordered, func(a, b workout.Workout) int {
		if c := cmp.Compare(a.WeekNumber, b.WeekNumber); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})

	out := make([]WorkoutCompletion, 0, len(ordered))
	for _, w := range ordered {
		out = append(out, CompletionForWorkout(w, teams, memberships, rows, types))
	}
	return out
}
