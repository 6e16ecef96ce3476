package points

import (
	"fmt"
	"strings"
	"time"
)

// GrantMode decides how a grant behaves when the same logical grant is repeated.
type GrantMode string

const (
	// GrantModeOnce upserts on (athlete, point type, workout).
	GrantModeOnce GrantMode = "once"
	// GrantModeAppend always adds a new ledger row.
	GrantModeAppend GrantMode = "append"
)

// Assignment is one ledger entry recording why an athlete holds points.
type Assignment struct {
	ID          string
	AssignerID  string
	AssigneeID  string
	PointTypeID string
	WorkoutID   *string
	Points      int
	Notes       string
	Mode        GrantMode
	AssignedAt  time.Time
}

// AthletePoint is the derived fact row read by aggregation.
type AthletePoint struct {
	ID           string
	AssignmentID string
	AthleteID    string
	PointTypeID  string
	WorkoutID    *string
	Points       int
	Notes        string
	Mode         GrantMode
	CreatedAt    time.Time
}

// Grant pairs a ledger entry with its projection. Both are written together.
type Grant struct {
	Assignment   Assignment
	AthletePoint AthletePoint
}

// NewGrant builds a grant whose projection mirrors the assignment.
func NewGrant(assignment Assignment, athletePointID string) Grant {
	return Grant{
		Assignment:   assignment,
		AthletePoint: ProjectAssignment(assignment, athletePointID),
	}
}

// ProjectAssignment derives the athlete point row for an assignment.
func ProjectAssignment(assignment Assignment, athletePointID string) AthletePoint {
	return AthletePoint{
		ID:           athletePointID,
		AssignmentID: assignment.ID,
		AthleteID:    assignment.AssigneeID,
		PointTypeID:  assignment.PointTypeID,
		WorkoutID:    assignment.WorkoutID,
		Points:       assignment.Points,
		Notes:        assignment.Notes,
		Mode:         assignment.Mode,
		CreatedAt:    assignment.AssignedAt,
	}
}

func (g Grant) Validate() error {
	a := g.Assignment
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("assignment id is required")
	}
	if strings.TrimSpace(a.AssignerID) == "" {
		return fmt.Errorf("assigner id is required")
	}
	if strings.TrimSpace(a.AssigneeID) == "" {
		return fmt.Errorf("assignee id is required")
	}
	if strings.TrimSpace(a.PointTypeID) == "" {
		return fmt.Errorf("point type id is required")
	}
	if a.Mode != GrantModeOnce && a.Mode != GrantModeAppend {
		return fmt.Errorf("unknown grant mode %q", a.Mode)
	}
	if strings.TrimSpace(g.AthletePoint.ID) == "" {
		return fmt.Errorf("athlete point id is required")
	}
	if g.AthletePoint.AssignmentID != a.ID {
		return fmt.Errorf("athlete point must reference assignment %s", a.ID)
	}

	return nil
}

// Filter narrows ledger and projection reads. Empty fields match everything.
type Filter struct {
	AthleteID   string
	WorkoutID   string
	AssignerID  string
	PointTypeID string
}

// SameWorkout compares two optional workout ids.
func SameWorkout(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
