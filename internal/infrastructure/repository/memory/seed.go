package memory

import (
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
)

// Fixed ids for the local demo competition.
const (
	PointTypeIDWorkoutCompletion = "6f0c1a52-3b7e-4f43-9d0a-1c5e2b7d8a01"
	PointTypeIDWeeklyPR          = "6f0c1a52-3b7e-4f43-9d0a-1c5e2b7d8a02"
	PointTypeIDSpirit            = "6f0c1a52-3b7e-4f43-9d0a-1c5e2b7d8a03"
	PointTypeIDPodium            = "6f0c1a52-3b7e-4f43-9d0a-1c5e2b7d8a04"

	TeamIDRed  = "0b7f4c2e-8d61-4a3f-b5e9-2f6a1d9c3e01"
	TeamIDBlue = "0b7f4c2e-8d61-4a3f-b5e9-2f6a1d9c3e02"
)

func SeedPointTypes() []pointtype.PointType {
	return []pointtype.PointType{
		{ID: PointTypeIDWorkoutCompletion, Name: "Workout Completion", Category: pointtype.CategoryCompletion, Points: 1},
		{ID: PointTypeIDWeeklyPR, Name: "Weekly PR", Category: pointtype.CategoryWeekly, Points: 1},
		{ID: PointTypeIDSpirit, Name: "Spirit of the Open", Category: pointtype.CategoryOneTime, Points: 2},
		{ID: PointTypeIDPodium, Name: "Division Podium", Category: pointtype.CategoryPerformance, Points: 3},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDRed, Name: "Red Rhinos"},
		{ID: TeamIDBlue, Name: "Blue Barbells"},
	}
}

// SeedAthletes returns unclaimed athletes ready for onboarding.
func SeedAthletes() []athlete.Athlete {
	open := athlete.DivisionOpenMale
	scaled := athlete.DivisionScaledFemale
	return []athlete.Athlete{
		{ID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a01", Name: "Rina Saputra", Division: &scaled, Role: athlete.RoleAthlete},
		{ID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a02", Name: "Agus Pratama", Division: &open, Role: athlete.RoleCaptain},
		{ID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a03", Name: "Dimas Hidayat", Division: &open, Role: athlete.RoleAthlete},
		{ID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a04", Name: "Sari Wulandari", Role: athlete.RoleAthlete},
	}
}

func SeedMemberships(assignedAt time.Time) []team.Membership {
	return []team.Membership{
		{ID: "d2e8f6a1-7c3b-4b9d-8e05-4a1c6f2b9d01", AthleteID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a01", TeamID: TeamIDRed, IsActive: true, AssignedAt: assignedAt},
		{ID: "d2e8f6a1-7c3b-4b9d-8e05-4a1c6f2b9d02", AthleteID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a02", TeamID: TeamIDRed, IsActive: true, AssignedAt: assignedAt},
		{ID: "d2e8f6a1-7c3b-4b9d-8e05-4a1c6f2b9d03", AthleteID: "a3c9e1d4-5b2f-4e8a-9c71-6d0f3b8e2a03", TeamID: TeamIDBlue, IsActive: true, AssignedAt: assignedAt},
	}
}

// SeedWorkouts schedules three weekly workouts starting at firstDate.
func SeedWorkouts(firstDate time.Time) []workout.Workout {
	day := time.Date(firstDate.Year(), firstDate.Month(), firstDate.Day(), 0, 0, 0, 0, time.UTC)
	return []workout.Workout{
		{ID: "e5b1a7c3-9f2d-4c6e-a813-7b4d0e6f1c01", Name: "26.1", WeekNumber: 1, Date: day, ScoringType: workout.ScoringReps},
		{ID: "e5b1a7c3-9f2d-4c6e-a813-7b4d0e6f1c02", Name: "26.2", WeekNumber: 2, Date: day.AddDate(0, 0, 7), ScoringType: workout.ScoringTime},
		{ID: "e5b1a7c3-9f2d-4c6e-a813-7b4d0e6f1c03", Name: "26.3", WeekNumber: 3, Date: day.AddDate(0, 0, 14), ScoringType: workout.ScoringLoad},
	}
}
