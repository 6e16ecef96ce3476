package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	basecache "github.com/riskibarqy/fitness-league/internal/platform/cache"
)

// Only reference data is cached here. Points, scores and memberships are
// read straight from the store so leaderboards never serve stale totals.

const (
	pointTypePrefix = "point_type:"
	workoutPrefix   = "workout:"
	teamPrefix      = "team:"
)

type PointTypeRepository struct {
	next  pointtype.Repository
	cache *basecache.Store
}

func NewPointTypeRepository(next pointtype.Repository, cache *basecache.Store) *PointTypeRepository {
	return &PointTypeRepository{next: next, cache: cache}
}

func (r *PointTypeRepository) List(ctx context.Context, category *pointtype.Category) ([]pointtype.PointType, error) {
	key := pointTypePrefix + "list:all"
	if category != nil {
		key = pointTypePrefix + "list:" + string(*category)
	}
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]pointtype.PointType, error) {
		return r.next.List(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return append([]pointtype.PointType(nil), items...), nil
}

func (r *PointTypeRepository) GetByIDs(ctx context.Context, ids []string) ([]pointtype.PointType, error) {
	key := pointTypePrefix + "ids:" + idsKey(ids)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]pointtype.PointType, error) {
		return r.next.GetByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return append([]pointtype.PointType(nil), items...), nil
}

func (r *PointTypeRepository) Create(ctx context.Context, item pointtype.PointType) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, pointTypePrefix)
	return nil
}

type WorkoutRepository struct {
	next  workout.Repository
	cache *basecache.Store
}

func NewWorkoutRepository(next workout.Repository, cache *basecache.Store) *WorkoutRepository {
	return &WorkoutRepository{next: next, cache: cache}
}

func (r *WorkoutRepository) List(ctx context.Context) ([]workout.Workout, error) {
	items, err := basecache.Load(ctx, r.cache, workoutPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]workout.Workout(nil), items...), nil
}

func (r *WorkoutRepository) ListByWeek(ctx context.Context, weekNumber int) ([]workout.Workout, error) {
	key := workoutPrefix + "week:" + strconv.Itoa(weekNumber)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]workout.Workout, error) {
		return r.next.ListByWeek(ctx, weekNumber)
	})
	if err != nil {
		return nil, err
	}
	return append([]workout.Workout(nil), items...), nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID string) (workout.Workout, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, workoutPrefix+"id:"+workoutID, func(ctx context.Context) (cachedWorkoutByID, error) {
		item, exists, err := r.next.GetByID(ctx, workoutID)
		if err != nil {
			return cachedWorkoutByID{}, err
		}
		return cachedWorkoutByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return workout.Workout{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, item workout.Workout) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, workoutPrefix)
	return nil
}

type cachedWorkoutByID struct {
	value  workout.Workout
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamPrefix+"id:"+teamID, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) ListActiveMemberships(ctx context.Context) ([]team.Membership, error) {
	return r.next.ListActiveMemberships(ctx)
}

func (r *TeamRepository) AssignAthlete(ctx context.Context, membership team.Membership) error {
	return r.next.AssignAthlete(ctx, membership)
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func idsKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
