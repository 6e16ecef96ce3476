package workout

import (
	"testing"
	"time"
)

func TestWindowState(t *testing.T) {
	t.Parallel()

	scheduled := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	window := NewWindow(0)

	tests := []struct {
		name string
		now  time.Time
		want WindowState
	}{
		{name: "before date", now: scheduled.Add(-time.Second), want: WindowNotYetOpen},
		{name: "on date", now: scheduled, want: WindowOpen},
		{name: "inside window", now: scheduled.Add(48 * time.Hour), want: WindowOpen},
		{name: "last instant", now: scheduled.Add(72 * time.Hour), want: WindowOpen},
		{name: "after window", now: scheduled.Add(72*time.Hour + time.Nanosecond), want: WindowClosed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := window.State(scheduled, tc.now); got != tc.want {
				t.Fatalf("state mismatch: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestWindowCustomLength(t *testing.T) {
	t.Parallel()

	scheduled := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	window := NewWindow(24 * time.Hour)

	if got := window.State(scheduled, scheduled.Add(25*time.Hour)); got != WindowClosed {
		t.Fatalf("expected closed after custom window, got=%s", got)
	}
	if !window.ClosesAt(scheduled).Equal(scheduled.Add(24 * time.Hour)) {
		t.Fatalf("unexpected close time: %s", window.ClosesAt(scheduled))
	}
}
