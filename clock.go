package countdown

//go:generate go tool mockgen -source=clock.go -destination=internal/testutil/clockmock/clock.go -package=clockmock

import (
	"slices"
	"sync"
	"time"
)

// FrameClock produces the frame signals that drive countdown timers.
//
// A timer keeps at most one pending frame registration per active cycle
// and always releases it when the cycle stops.
type FrameClock interface {
	// ScheduleFrame registers fn to be called once on the next frame.
	// The returned cancel func releases the pending registration.
	// A cancelled registration never fires. Cancel is safe to call
	// multiple times and after the frame has fired.
	ScheduleFrame(fn func(now time.Time)) (cancel func())
	// Now returns the clock's current time.
	Now() time.Time
}

// DefaultFrameInterval is the frame interval of [SystemFrameClock]
// when no interval is set, roughly 60 frames per second.
const DefaultFrameInterval = time.Second / 60

var defFrameClock = &SystemFrameClock{}

// DefaultFrameClock returns the frame clock used by timers
// when no clock is provided in options.
func DefaultFrameClock() FrameClock { return defFrameClock }

// SystemFrameClock is a [FrameClock] backed by the wall clock.
// Frames fire at a fixed interval. The zero value is usable.
type SystemFrameClock struct {
	// Interval is the time between frames.
	// If zero or negative, the [DefaultFrameInterval] is used.
	Interval time.Duration
}

func (sc *SystemFrameClock) interval() time.Duration {
	if sc == nil || sc.Interval <= 0 {
		return DefaultFrameInterval
	}
	return sc.Interval
}

// ScheduleFrame implements [FrameClock].
func (sc *SystemFrameClock) ScheduleFrame(fn func(now time.Time)) (cancel func()) {
	tmr := time.AfterFunc(sc.interval(), func() { fn(time.Now()) })
	return func() { tmr.Stop() }
}

// Now implements [FrameClock].
func (sc *SystemFrameClock) Now() time.Time { return time.Now() }

// ManualFrameClock is a [FrameClock] advanced by hand.
// It is intended for tests and simulations where frame delivery
// and the flow of time must be deterministic.
//
// The zero value is a usable clock starting at the zero time.
type ManualFrameClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualFrame
}

type manualFrame struct {
	fn   func(now time.Time)
	done bool
}

// NewManualFrameClock creates a new [ManualFrameClock] with the current time set to start.
func NewManualFrameClock(start time.Time) *ManualFrameClock {
	return &ManualFrameClock{now: start}
}

// ScheduleFrame implements [FrameClock].
func (mc *ManualFrameClock) ScheduleFrame(fn func(now time.Time)) (cancel func()) {
	fr := &manualFrame{fn: fn}
	mc.mu.Lock()
	mc.pending = append(mc.pending, fr)
	mc.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mc.mu.Lock()
			fr.done = true
			mc.pending = slices.DeleteFunc(mc.pending, func(f *manualFrame) bool { return f == fr })
			mc.mu.Unlock()
		})
	}
}

// Now implements [FrameClock].
func (mc *ManualFrameClock) Now() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.now
}

// Advance moves the clock forward by d and fires all pending frame callbacks
// with the new time. Each registration fires at most once. Callbacks scheduled
// while a frame is firing are kept for the next frame.
func (mc *ManualFrameClock) Advance(d time.Duration) {
	mc.mu.Lock()
	mc.now = mc.now.Add(d)
	now := mc.now
	batch := mc.pending
	mc.pending = nil
	mc.mu.Unlock()

	for _, fr := range batch {
		mc.mu.Lock()
		fired := fr.done
		fr.done = true
		mc.mu.Unlock()

		if !fired {
			fr.fn(now)
		}
	}
}

// Fire fires all pending frame callbacks without moving the clock.
func (mc *ManualFrameClock) Fire() { mc.Advance(0) }

// Pending returns the number of pending frame registrations.
func (mc *ManualFrameClock) Pending() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.pending)
}
