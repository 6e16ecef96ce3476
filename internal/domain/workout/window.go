package workout

import "time"

// DefaultScoringWindow is how long self-service logging stays open after the workout date.
const DefaultScoringWindow = 72 * time.Hour

// WindowState is the self-service logging state of a workout.
type WindowState string

const (
	WindowNotYetOpen WindowState = "not_yet_open"
	WindowOpen       WindowState = "open_for_logging"
	WindowClosed     WindowState = "closed"
)

// Window derives the logging state from wall-clock time and the workout date.
type Window struct {
	Length time.Duration
}

func NewWindow(length time.Duration) Window {
	if length <= 0 {
		length = DefaultScoringWindow
	}
	return Window{Length: length}
}

// State returns not_yet_open before the date, open through date+Length
// inclusive, and closed afterwards.
func (w Window) State(scheduled, now time.Time) WindowState {
	length := w.Length
	if length <= 0 {
		length = DefaultScoringWindow
	}
	switch {
	case now.Before(scheduled):
		return WindowNotYetOpen
	case now.After(scheduled.Add(length)):
		return WindowClosed
	default:
		return WindowOpen
	}
}

// ClosesAt is the last instant at which logging is accepted.
func (w Window) ClosesAt(scheduled time.Time) time.Time {
	length := w.Length
	if length <= 0 {
		length = DefaultScoringWindow
	}
	return scheduled.Add(length)
}

func (s WindowState) AcceptsScores() bool {
	return s == WindowOpen
}
