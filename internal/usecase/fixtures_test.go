package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	next atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("id-%03d", g.next.Add(1)), nil
}

var fixedNow = time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

type testStores struct {
	athletes   *memory.AthleteRepository
	teams      *memory.TeamRepository
	pointTypes *memory.PointTypeRepository
	workouts   *memory.WorkoutRepository
	points     *memory.PointsRepository
	scores     *memory.ScoreRepository
	ids        *sequenceIDGenerator
}

// newTestStores builds a competition with an admin, a captain on team red,
// three athletes and one workout scheduled the day before fixedNow.
func newTestStores() testStores {
	open := athlete.DivisionOpenMale
	athletes := []athlete.Athlete{
		{ID: "admin", UserID: "user-admin", Name: "Admin", Role: athlete.RoleAdmin},
		{ID: "captain", UserID: "user-captain", Name: "Captain", Role: athlete.RoleCaptain, Division: &open},
		{ID: "a1", UserID: "user-a1", Name: "Ana", Role: athlete.RoleAthlete, Division: &open},
		{ID: "a2", UserID: "user-a2", Name: "Budi", Role: athlete.RoleAthlete},
		{ID: "a3", Name: "Citra", Role: athlete.RoleAthlete},
	}
	teams := []team.Team{{ID: "red", Name: "Red"}, {ID: "blue", Name: "Blue"}}
	memberships := []team.Membership{
		{ID: "m1", AthleteID: "captain", TeamID: "red", IsActive: true},
		{ID: "m2", AthleteID: "a1", TeamID: "red", IsActive: true},
		{ID: "m3", AthleteID: "a2", TeamID: "blue", IsActive: true},
	}
	types := []pointtype.PointType{
		{ID: "pt-done", Name: "Workout Completion", Category: pointtype.CategoryCompletion, Points: 1},
		{ID: "pt-pr", Name: "Weekly PR", Category: pointtype.CategoryWeekly, Points: 1},
		{ID: "pt-spirit", Name: "Spirit of the Open", Category: pointtype.CategoryOneTime, Points: 2},
		{ID: "pt-podium", Name: "Podium", Category: pointtype.CategoryPerformance, Points: 3},
	}
	workouts := []workout.Workout{
		{ID: "w1", Name: "26.1", WeekNumber: 1, Date: fixedNow.AddDate(0, 0, -1), ScoringType: workout.ScoringTime},
		{ID: "w2", Name: "26.2", WeekNumber: 2, Date: fixedNow.AddDate(0, 0, 6), ScoringType: workout.ScoringReps},
	}

	scores := memory.NewScoreRepository()
	return testStores{
		athletes:   memory.NewAthleteRepository(athletes),
		teams:      memory.NewTeamRepository(teams, memberships),
		pointTypes: memory.NewPointTypeRepository(types),
		workouts:   memory.NewWorkoutRepository(workouts),
		points:     memory.NewPointsRepository(scores),
		scores:     scores,
		ids:        &sequenceIDGenerator{},
	}
}

func (s testStores) pointService() *PointService {
	svc := NewPointService(
		s.athletes,
		s.teams,
		s.pointTypes,
		s.workouts,
		s.points,
		s.ids,
		CompletionGrantConfig{PointTypeID: "pt-done", Points: 1},
		2,
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (s testStores) scoreService() *ScoreService {
	svc := NewScoreService(s.athletes, s.workouts, s.scores, s.pointService(), workout.NewWindow(0), time.UTC, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func identityOf(s testStores, athleteID string) athlete.Identity {
	item, _, _ := s.athletes.GetByID(context.Background(), athleteID)
	return athlete.Identity{UserID: item.UserID, Athlete: item}
}
