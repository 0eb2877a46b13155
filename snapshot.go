package countdown

import (
	"log/slog"
	"time"
)

// Snapshot represents a read-only view of a timer state at a point in time.
type Snapshot struct {
	// Time is the snapshot timestamp.
	Time time.Time `json:"time"`
	// State is the timer state.
	State State `json:"state"`
	// Duration is the full countdown duration.
	Duration time.Duration `json:"duration"`
	// Progress is the countdown progress in [0, 1].
	Progress float64 `json:"progress"`
	// Elapsed is the elapsed part of the countdown duration.
	Elapsed time.Duration `json:"elapsed"`
	// Remaining is the remaining part of the countdown duration.
	Remaining time.Duration `json:"remaining"`
}

// IsValid checks whether the snapshot is valid.
func (snap Snapshot) IsValid() bool {
	return snap.State != "" &&
		snap.Duration > 0 &&
		snap.Progress >= 0 && snap.Progress <= 1
}

// LogValue implements [slog.LogValuer].
func (snap Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Time("time", snap.Time),
		slog.Any("state", snap.State),
		slog.Duration("duration", snap.Duration),
		slog.Float64("progress", snap.Progress),
		slog.Duration("elapsed", snap.Elapsed),
		slog.Duration("remaining", snap.Remaining),
	)
}
