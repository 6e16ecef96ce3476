package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/leaderboard"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultTopAthletes     = 10
	DefaultSpiritPointName = "Spirit of the Open"
)

// Dashboard is the landing view: standings, completion and top athletes.
type Dashboard struct {
	Standings   []leaderboard.TeamStanding
	Completion  []leaderboard.WorkoutCompletion
	TopAthletes []leaderboard.AthleteTotal
}

// WorkoutRanking is one workout's ranking inside one division.
type WorkoutRanking struct {
	Workout  workout.Workout
	Division string
	Rows     []leaderboard.RankedScore
}

type LeaderboardService struct {
	athleteRepo   athlete.Repository
	teamRepo      team.Repository
	pointTypeRepo pointtype.Repository
	workoutRepo   workout.Repository
	pointsRepo    points.Repository
	scoreRepo     score.Repository
	tieBreak      leaderboard.TieBreak
	spiritName    string
}

func NewLeaderboardService(
	athleteRepo athlete.Repository,
	teamRepo team.Repository,
	pointTypeRepo pointtype.Repository,
	workoutRepo workout.Repository,
	pointsRepo points.Repository,
	scoreRepo score.Repository,
	tieBreak leaderboard.TieBreak,
	spiritName string,
) *LeaderboardService {
	if strings.TrimSpace(spiritName) == "" {
		spiritName = DefaultSpiritPointName
	}

	return &LeaderboardService{
		athleteRepo:   athleteRepo,
		teamRepo:      teamRepo,
		pointTypeRepo: pointTypeRepo,
		workoutRepo:   workoutRepo,
		pointsRepo:    pointsRepo,
		scoreRepo:     scoreRepo,
		tieBreak:      tieBreak,
		spiritName:    spiritName,
	}
}

type loadSet uint8

const (
	loadAthletes loadSet = 1 << iota
	loadTeams
	loadMemberships
	loadPointTypes
	loadWorkouts
	loadPoints
)

// snapshot holds one view's independent reads, fetched concurrently.
type snapshot struct {
	athletes    []athlete.Athlete
	teams       []team.Team
	memberships []team.Membership
	pointTypes  []pointtype.PointType
	workouts    []workout.Workout
	points      []points.AthletePoint
}

func (s *LeaderboardService) load(ctx context.Context, set loadSet) (snapshot, error) {
	var out snapshot
	p := pool.New().WithContext(ctx).WithCancelOnError()

	if set&loadAthletes != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.athleteRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("list athletes: %w", err)
			}
			out.athletes = items
			return nil
		})
	}
	if set&loadTeams != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.teamRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("list teams: %w", err)
			}
			out.teams = items
			return nil
		})
	}
	if set&loadMemberships != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.teamRepo.ListActiveMemberships(ctx)
			if err != nil {
				return fmt.Errorf("list active memberships: %w", err)
			}
			out.memberships = items
			return nil
		})
	}
	if set&loadPointTypes != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.pointTypeRepo.List(ctx, nil)
			if err != nil {
				return fmt.Errorf("list point types: %w", err)
			}
			out.pointTypes = items
			return nil
		})
	}
	if set&loadWorkouts != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.workoutRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("list workouts: %w", err)
			}
			out.workouts = items
			return nil
		})
	}
	if set&loadPoints != 0 {
		p.Go(func(ctx context.Context) error {
			items, err := s.pointsRepo.ListAthletePoints(ctx, points.Filter{})
			if err != nil {
				return fmt.Errorf("list athlete points: %w", err)
			}
			out.points = items
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return snapshot{}, err
	}
	return out, nil
}

func (s *LeaderboardService) TeamStandings(ctx context.Context) ([]leaderboard.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.TeamStandings")
	defer span.End()

	snap, err := s.load(ctx, loadTeams|loadMemberships|loadPoints)
	if err != nil {
		return nil, err
	}
	return s.standings(snap), nil
}

func (s *LeaderboardService) standings(snap snapshot) []leaderboard.TeamStanding {
	return leaderboard.TeamStandings(snap.teams, snap.memberships, leaderboard.SumByAthlete(snap.points), s.tieBreak)
}

func (s *LeaderboardService) TopAthletes(ctx context.Context, limit int) ([]leaderboard.AthleteTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.TopAthletes")
	defer span.End()

	if limit <= 0 {
		limit = DefaultTopAthletes
	}
	snap, err := s.load(ctx, loadAthletes|loadPoints)
	if err != nil {
		return nil, err
	}
	return leaderboard.TopAthletes(leaderboard.Aggregate(snap.athletes, snap.points), limit), nil
}

func (s *LeaderboardService) WorkoutCompletion(ctx context.Context) ([]leaderboard.WorkoutCompletion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.WorkoutCompletion")
	defer span.End()

	snap, err := s.load(ctx, loadTeams|loadMemberships|loadPointTypes|loadWorkouts|loadPoints)
	if err != nil {
		return nil, err
	}
	return s.completion(snap), nil
}

func (s *LeaderboardService) completion(snap snapshot) []leaderboard.WorkoutCompletion {
	return leaderboard.CompletionByWorkout(snap.workouts, snap.teams, snap.memberships, snap.points, pointtype.Index(snap.pointTypes))
}

// Divisions groups the roster by division. When workoutID is set, every
// group is ranked by that workout's scores.
func (s *LeaderboardService) Divisions(ctx context.Context, workoutID string) ([]leaderboard.DivisionGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Divisions")
	defer span.End()

	roster, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	groups := leaderboard.GroupByDivision(roster)

	workoutID = strings.TrimSpace(workoutID)
	if workoutID == "" {
		return groups, nil
	}
	item, scores, err := s.workoutScores(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	return leaderboard.RankDivisions(groups, item, scores), nil
}

// WorkoutRanking ranks one workout. An empty division ranks everyone.
func (s *LeaderboardService) WorkoutRanking(ctx context.Context, workoutID, division string) (WorkoutRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.WorkoutRanking")
	defer span.End()

	division, err := canonicalDivision(division)
	if err != nil {
		return WorkoutRanking{}, err
	}

	item, scores, err := s.workoutScores(ctx, workoutID)
	if err != nil {
		return WorkoutRanking{}, err
	}
	roster, err := s.athleteRepo.List(ctx)
	if err != nil {
		return WorkoutRanking{}, fmt.Errorf("list athletes: %w", err)
	}

	entries := leaderboard.EntriesForDivision(roster, scores, division)
	return WorkoutRanking{
		Workout:  item,
		Division: division,
		Rows:     leaderboard.RankScores(item.ScoringType, entries),
	}, nil
}

// canonicalDivision normalizes a division filter to the stored label.
func canonicalDivision(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if strings.EqualFold(raw, leaderboard.Unassigned) {
		return leaderboard.Unassigned, nil
	}
	parsed, err := athlete.ParseDivision(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return string(*parsed), nil
}

func (s *LeaderboardService) workoutScores(ctx context.Context, workoutID string) (workout.Workout, []score.Score, error) {
	workoutID = strings.TrimSpace(workoutID)
	if workoutID == "" {
		return workout.Workout{}, nil, fmt.Errorf("%w: workout id is required", ErrInvalidInput)
	}
	item, exists, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return workout.Workout{}, nil, fmt.Errorf("get workout: %w", err)
	}
	if !exists {
		return workout.Workout{}, nil, fmt.Errorf("%w: workout=%s", ErrNotFound, workoutID)
	}
	scores, err := s.scoreRepo.ListByWorkout(ctx, workoutID)
	if err != nil {
		return workout.Workout{}, nil, fmt.Errorf("list scores: %w", err)
	}
	return item, scores, nil
}

// SpiritWinners lists weekly spirit awards. Without a matching point type the list is empty.
func (s *LeaderboardService) SpiritWinners(ctx context.Context) ([]leaderboard.SpiritWinner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.SpiritWinners")
	defer span.End()

	snap, err := s.load(ctx, loadAthletes|loadPointTypes|loadWorkouts|loadPoints)
	if err != nil {
		return nil, err
	}

	spiritID := ""
	for _, pt := range snap.pointTypes {
		if strings.EqualFold(strings.TrimSpace(pt.Name), s.spiritName) {
			spiritID = pt.ID
			break
		}
	}
	if spiritID == "" {
		return []leaderboard.SpiritWinner{}, nil
	}
	return leaderboard.SpiritWinners(snap.points, spiritID, snap.workouts, snap.athletes), nil
}

func (s *LeaderboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Dashboard")
	defer span.End()

	snap, err := s.load(ctx, loadAthletes|loadTeams|loadMemberships|loadPointTypes|loadWorkouts|loadPoints)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Standings:   s.standings(snap),
		Completion:  s.completion(snap),
		TopAthletes: leaderboard.TopAthletes(leaderboard.Aggregate(snap.athletes, snap.points), DefaultTopAthletes),
	}, nil
}
