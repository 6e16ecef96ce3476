package leaderboard

import (
	"slices"
	"testing"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
)

func TestAggregateOneTotalPerRosterAthlete(t *testing.T) {
	t.Parallel()

	roster := []athlete.Athlete{
		{ID: "a1", Name: "Ana"},
		{ID: "a2", Name: "Budi"},
		{ID: "a3", Name: "Citra"},
	}
	rows := []points.AthletePoint{
		{AthleteID: "a1", Points: 3},
		{AthleteID: "a3", Points: 1},
		{AthleteID: "a1", Points: 2},
		{AthleteID: "ghost", Points: 10},
	}

	totals := Aggregate(roster, rows)
	if len(totals) != len(roster) {
		t.Fatalf("expected %d totals, got=%d", len(roster), len(totals))
	}

	want := map[string]int{"a1": 5, "a2": 0, "a3": 1}
	for i, total := range totals {
		if total.AthleteID != roster[i].ID {
			t.Fatalf("totals must keep roster order: got=%s want=%s", total.AthleteID, roster[i].ID)
		}
		if total.Points != want[total.AthleteID] {
			t.Fatalf("unexpected total for %s: got=%d want=%d", total.AthleteID, total.Points, want[total.AthleteID])
		}
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	t.Parallel()

	roster := []athlete.Athlete{{ID: "a1"}, {ID: "a2"}}
	rows := []points.AthletePoint{
		{AthleteID: "a1", Points: 1},
		{AthleteID: "a2", Points: 4},
		{AthleteID: "a1", Points: 7},
	}
	reversed := slices.Clone(rows)
	slices.Reverse(reversed)

	if !slices.Equal(Aggregate(roster, rows), Aggregate(roster, reversed)) {
		t.Fatalf("aggregation must not depend on row order")
	}
}

func TestTopAthletes(t *testing.T) {
	t.Parallel()

	totals := []AthleteTotal{
		{AthleteID: "a1", Name: "Dewi", Points: 4},
		{AthleteID: "a2", Name: "Ana", Points: 9},
		{AthleteID: "a3", Name: "Budi", Points: 4},
		{AthleteID: "a4", Name: "Eka", Points: 1},
	}

	top := TopAthletes(totals, 3)
	got := []string{top[0].AthleteID, top[1].AthleteID, top[2].AthleteID}
	want := []string{"a2", "a3", "a1"}
	if len(top) != 3 || !slices.Equal(got, want) {
		t.Fatalf("unexpected top athletes: got=%v want=%v", got, want)
	}
	if totals[0].AthleteID != "a1" {
		t.Fatalf("input must not be reordered")
	}
}
