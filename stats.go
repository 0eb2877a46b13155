package countdown

import (
	"sync/atomic"
	"time"
)

// StatsReport is a point-in-time report of countdown statistics.
type StatsReport struct {
	Time   time.Time  `json:"time"`
	Timers TimerStats `json:"timers"`
}

// TimerStats holds counters of timer lifecycle events.
type TimerStats struct {
	// Active is a number of timers currently counting down.
	Active uint64 `json:"active"`
	// CyclesStarted is a total number of started countdown cycles.
	CyclesStarted uint64 `json:"cycles_started"`
	// CyclesCompleted is a total number of cycles that reached the done state.
	CyclesCompleted uint64 `json:"cycles_completed"`
	// CyclesPaused is a total number of pause transitions.
	CyclesPaused uint64 `json:"cycles_paused"`
	// CyclesResumed is a total number of resume transitions.
	CyclesResumed uint64 `json:"cycles_resumed"`
	// TicksApplied is a total number of frame ticks applied to timers.
	TicksApplied uint64 `json:"ticks_applied"`
	// StaleTicksDropped is a total number of dropped ticks from superseded cycles.
	StaleTicksDropped uint64 `json:"stale_ticks_dropped"`
}

// StatsRecorder records countdown timer statistics.
// A single recorder can be shared by multiple timers, see [Options.Stats].
type StatsRecorder struct {
	activeTmrs atomic.Int64

	cyclesStarted,
	cyclesCompleted,
	cyclesPaused,
	cyclesResumed,
	ticks,
	staleTicks atomic.Uint64
}

// Report returns a statistics report over all timers recording into the recorder.
// Call this function periodically to get updated values.
func (rcdr *StatsRecorder) Report() StatsReport {
	return StatsReport{
		Time: time.Now(),
		Timers: TimerStats{
			Active:            clampToUint64(rcdr.activeTmrs.Load()),
			CyclesStarted:     rcdr.cyclesStarted.Load(),
			CyclesCompleted:   rcdr.cyclesCompleted.Load(),
			CyclesPaused:      rcdr.cyclesPaused.Load(),
			CyclesResumed:     rcdr.cyclesResumed.Load(),
			TicksApplied:      rcdr.ticks.Load(),
			StaleTicksDropped: rcdr.staleTicks.Load(),
		},
	}
}

func clampToUint64(value int64) uint64 {
	if value <= 0 {
		return 0
	}
	return uint64(value)
}
