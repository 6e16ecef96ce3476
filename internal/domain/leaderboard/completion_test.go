package leaderboard

import (
	"testing"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

func TestCompletionForWorkout(t *testing.T) {
	t.Parallel()

	w := workout.Workout{ID: "w1", WeekNumber: 1}
	other := "w2"
	wID := w.ID
	teams := []team.Team{{ID: "t1", Name: "Wolves"}, {ID: "t2", Name: "Empty"}}

	var memberships []team.Membership
	for _, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		memberships = append(memberships, team.Membership{AthleteID: id, TeamID: "t1", IsActive: true})
	}
	types := pointtype.Index([]pointtype.PointType{
		{ID: "pt-done", Category: pointtype.CategoryCompletion, Points: 1},
		{ID: "pt-week", Category: pointtype.CategoryWeekly, Points: 2},
		{ID: "pt-perf", Category: pointtype.CategoryPerformance, Points: 5},
	})
	rows := []points.AthletePoint{
		{AthleteID: "a1", PointTypeID: "pt-done", WorkoutID: &wID, Points: 1},
		{AthleteID: "a1", PointTypeID: "pt-week", WorkoutID: &wID, Points: 2},
		{AthleteID: "a2", PointTypeID: "pt-done", WorkoutID: &wID, Points: 1},
		{AthleteID: "a3", PointTypeID: "pt-week", WorkoutID: &wID, Points: 2},
		{AthleteID: "a4", PointTypeID: "pt-perf", WorkoutID: &wID, Points: 5},
		{AthleteID: "a5", PointTypeID: "pt-done", WorkoutID: &other, Points: 1},
		{AthleteID: "outsider", PointTypeID: "pt-done", WorkoutID: &wID, Points: 1},
	}

	got := CompletionForWorkout(w, teams, memberships, rows, types)
	if len(got.Teams) != 2 {
		t.Fatalf("expected every team, got=%d", len(got.Teams))
	}

	wolves := got.Teams[0]
	if wolves.Completed != 3 || wolves.Total != 5 {
		t.Fatalf("unexpected completion: %d/%d", wolves.Completed, wolves.Total)
	}
	if wolves.Ratio() != 0.6 {
		t.Fatalf("unexpected ratio: %v", wolves.Ratio())
	}
	if wolves.Points != 6 {
		t.Fatalf("unexpected completion points: %d", wolves.Points)
	}

	empty := got.Teams[1]
	if empty.Total != 0 || empty.Completed != 0 || empty.Ratio() != 0 {
		t.Fatalf("team without members must report 0/0, got=%+v ratio=%v", empty, empty.Ratio())
	}
}

func TestCompletionByWorkoutOrdersByWeek(t *testing.T) {
	t.Parallel()

	workouts := []workout.Workout{{ID: "w3", WeekNumber: 3}, {ID: "w1", WeekNumber: 1}, {ID: "w2", WeekNumber: 2}}
	got := CompletionByWorkout(workouts, nil, nil, nil, nil)
	for i, want := range []string{"w1", "w2", "w3"} {
		if got[i].Workout.ID != want {
			t.Fatalf("position %d: got=%s want=%s", i, got[i].Workout.ID, want)
		}
	}
}
