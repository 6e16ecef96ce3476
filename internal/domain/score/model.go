package score

import (
	"fmt"
	"strings"
	"time"
)

// Score is an athlete's result for one workout. At most one exists per pair.
type Score struct {
	ID             int64
	WorkoutID      string
	AthleteID      string
	Value          string
	Notes          string
	AthletePointID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s Score) Validate() error {
	if strings.TrimSpace(s.WorkoutID) == "" {
		return fmt.Errorf("workout id is required")
	}
	if strings.TrimSpace(s.AthleteID) == "" {
		return fmt.Errorf("athlete id is required")
	}
	if strings.TrimSpace(s.Value) == "" {
		return fmt.Errorf("score value is required")
	}

	return nil
}
