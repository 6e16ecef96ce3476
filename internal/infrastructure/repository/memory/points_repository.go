package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fitness-league/internal/domain/points"
)

// PointsRepository keeps the assignment ledger and its projection in insertion order.
// Deleting athlete points clears the link held by scores, when a score store is given.
type PointsRepository struct {
	mu          sync.RWMutex
	assignments []points.Assignment
	athletePts  []points.AthletePoint
	scores      *ScoreRepository
}

func NewPointsRepository(scores *ScoreRepository) *PointsRepository {
	return &PointsRepository{scores: scores}
}

func (r *PointsRepository) CreateGrants(_ context.Context, grants []points.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range grants {
		if err := g.Validate(); err != nil {
			return err
		}
		if r.assignmentIndex(g.Assignment.ID) >= 0 {
			return fmt.Errorf("assignment %s already exists", g.Assignment.ID)
		}
	}
	for _, g := range grants {
		r.assignments = append(r.assignments, cloneAssignment(g.Assignment))
		r.athletePts = append(r.athletePts, cloneAthletePoint(g.AthletePoint))
	}
	return nil
}

func (r *PointsRepository) GrantOnce(_ context.Context, grant points.Grant) (points.AthletePoint, error) {
	if err := grant.Validate(); err != nil {
		return points.AthletePoint{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a := grant.Assignment
	for i := range r.assignments {
		existing := &r.assignments[i]
		if existing.Mode != points.GrantModeOnce ||
			existing.AssigneeID != a.AssigneeID ||
			existing.PointTypeID != a.PointTypeID ||
			!points.SameWorkout(existing.WorkoutID, a.WorkoutID) {
			continue
		}
		existing.AssignerID = a.AssignerID
		existing.Points = a.Points
		existing.Notes = a.Notes
		existing.AssignedAt = a.AssignedAt

		for j := range r.athletePts {
			pt := &r.athletePts[j]
			if pt.AssignmentID == existing.ID {
				pt.Points = a.Points
				pt.Notes = a.Notes
				return cloneAthletePoint(*pt), nil
			}
		}
		restored := points.ProjectAssignment(*existing, grant.AthletePoint.ID)
		r.athletePts = append(r.athletePts, restored)
		return cloneAthletePoint(restored), nil
	}

	r.assignments = append(r.assignments, cloneAssignment(a))
	r.athletePts = append(r.athletePts, cloneAthletePoint(grant.AthletePoint))
	return cloneAthletePoint(grant.AthletePoint), nil
}

func (r *PointsRepository) ListAthletePoints(_ context.Context, filter points.Filter) ([]points.AthletePoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter.AssignerID = ""
	out := make([]points.AthletePoint, 0, len(r.athletePts))
	for _, pt := range r.athletePts {
		if !matches(filter, pt.AthleteID, pt.PointTypeID, pt.WorkoutID, "") {
			continue
		}
		out = append(out, cloneAthletePoint(pt))
	}
	return out, nil
}

func (r *PointsRepository) ListAssignments(_ context.Context, filter points.Filter) ([]points.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		if !matches(filter, a.AssigneeID, a.PointTypeID, a.WorkoutID, a.AssignerID) {
			continue
		}
		out = append(out, cloneAssignment(a))
	}
	return out, nil
}

func (r *PointsRepository) GetAssignment(_ context.Context, assignmentID string) (points.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.assignmentIndex(assignmentID)
	if idx < 0 {
		return points.Assignment{}, false, nil
	}
	return cloneAssignment(r.assignments[idx]), true, nil
}

func (r *PointsRepository) DeleteAssignment(_ context.Context, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.assignmentIndex(assignmentID)
	if idx < 0 {
		return nil
	}
	r.assignments = append(r.assignments[:idx], r.assignments[idx+1:]...)

	kept := r.athletePts[:0]
	removed := make(map[string]struct{})
	for _, pt := range r.athletePts {
		if pt.AssignmentID != assignmentID {
			kept = append(kept, pt)
			continue
		}
		removed[pt.ID] = struct{}{}
	}
	r.athletePts = kept
	if r.scores != nil {
		r.scores.unlinkAthletePoints(removed)
	}
	return nil
}

func (r *PointsRepository) ListOrphanedAssignments(_ context.Context) ([]points.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	linked := make(map[string]struct{}, len(r.athletePts))
	for _, pt := range r.athletePts {
		linked[pt.AssignmentID] = struct{}{}
	}

	out := make([]points.Assignment, 0)
	for _, a := range r.assignments {
		if _, ok := linked[a.ID]; !ok {
			out = append(out, cloneAssignment(a))
		}
	}
	return out, nil
}

func (r *PointsRepository) RestoreAthletePoint(_ context.Context, point points.AthletePoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.assignmentIndex(point.AssignmentID) < 0 {
		return fmt.Errorf("assignment %s not found", point.AssignmentID)
	}
	for _, pt := range r.athletePts {
		if pt.AssignmentID == point.AssignmentID {
			return nil
		}
	}
	r.athletePts = append(r.athletePts, cloneAthletePoint(point))
	return nil
}

// DropAthletePoint removes a projection row, leaving its assignment orphaned.
func (r *PointsRepository) DropAthletePoint(assignmentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.athletePts[:0]
	for _, pt := range r.athletePts {
		if pt.AssignmentID != assignmentID {
			kept = append(kept, pt)
		}
	}
	r.athletePts = kept
}

func (r *PointsRepository) assignmentIndex(assignmentID string) int {
	for i, a := range r.assignments {
		if a.ID == assignmentID {
			return i
		}
	}
	return -1
}

func matches(filter points.Filter, athleteID, pointTypeID string, workoutID *string, assignerID string) bool {
	if filter.AthleteID != "" && filter.AthleteID != athleteID {
		return false
	}
	if filter.PointTypeID != "" && filter.PointTypeID != pointTypeID {
		return false
	}
	if filter.WorkoutID != "" && (workoutID == nil || *workoutID != filter.WorkoutID) {
		return false
	}
	if filter.AssignerID != "" && filter.AssignerID != assignerID {
		return false
	}
	return true
}

func cloneAssignment(a points.Assignment) points.Assignment {
	copied := a
	copied.WorkoutID = cloneString(a.WorkoutID)
	return copied
}

func cloneAthletePoint(p points.AthletePoint) points.AthletePoint {
	copied := p
	copied.WorkoutID = cloneString(p.WorkoutID)
	return copied
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
