package workout

import (
	"fmt"
	"strings"
	"time"
)

// ScoringType decides how results of a workout compare.
type ScoringType string

const (
	ScoringTime ScoringType = "time"
	ScoringReps ScoringType = "reps"
	ScoringLoad ScoringType = "load"
)

func ParseScoringType(v string) (ScoringType, error) {
	st := ScoringType(strings.ToLower(strings.TrimSpace(v)))
	switch st {
	case ScoringTime, ScoringReps, ScoringLoad:
		return st, nil
	default:
		return "", fmt.Errorf("unknown scoring type %q", v)
	}
}

// LowerIsBetter reports whether smaller parsed values rank first.
func (s ScoringType) LowerIsBetter() bool {
	return s == ScoringTime
}

// Workout is one scheduled competition workout.
type Workout struct {
	ID            string
	Name          string
	WeekNumber    int
	Date          time.Time
	ScoringType   ScoringType
	Description   string
	Details       string
	StandardsLink string
	CreatedAt     time.Time
}

func (w Workout) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("workout id is required")
	}
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("workout name is required")
	}
	if w.WeekNumber <= 0 {
		return fmt.Errorf("week number must be greater than zero")
	}
	if w.Date.IsZero() {
		return fmt.Errorf("workout date is required")
	}
	if _, err := ParseScoringType(string(w.ScoringType)); err != nil {
		return err
	}

	return nil
}
