package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fitness-league/internal/domain/score"
)

type ScoreRepository struct {
	mu     sync.RWMutex
	items  map[string]score.Score
	nextID int64
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string]score.Score)}
}

func (r *ScoreRepository) GetByAthleteAndWorkout(_ context.Context, athleteID, workoutID string) (score.Score, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[scoreKey(workoutID, athleteID)]
	if !ok {
		return score.Score{}, false, nil
	}
	return cloneScore(item), true, nil
}

func (r *ScoreRepository) ListByWorkout(_ context.Context, workoutID string) ([]score.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]score.Score, 0)
	for _, item := range r.items {
		if item.WorkoutID == workoutID {
			out = append(out, cloneScore(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScoreRepository) Upsert(_ context.Context, item score.Score) (score.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scoreKey(item.WorkoutID, item.AthleteID)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		if item.AthletePointID == nil {
			item.AthletePointID = existing.AthletePointID
		}
	} else {
		r.nextID++
		item.ID = r.nextID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = item.UpdatedAt
		}
	}

	r.items[key] = cloneScore(item)
	return cloneScore(item), nil
}

func (r *ScoreRepository) unlinkAthletePoints(pointIDs map[string]struct{}) {
	if len(pointIDs) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.AthletePointID == nil {
			continue
		}
		if _, ok := pointIDs[*item.AthletePointID]; ok {
			item.AthletePointID = nil
			r.items[key] = item
		}
	}
}

func scoreKey(workoutID, athleteID string) string {
	return workoutID + "::" + athleteID
}

func cloneScore(s score.Score) score.Score {
	copied := s
	if s.AthletePointID != nil {
		v := *s.AthletePointID
		copied.AthletePointID = &v
	}
	return copied
}
