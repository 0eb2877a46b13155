package countdown

import (
	"context"
	"iter"
	"time"
)

// FrameTicker yields the frame timestamps of a [FrameClock] as a lazy sequence.
// One ticker serves one subscription, a new countdown cycle creates a new ticker.
type FrameTicker struct {
	clock FrameClock
}

// NewFrameTicker creates a new [FrameTicker] bound to the given clock.
// If clock is nil, the [DefaultFrameClock] is used.
func NewFrameTicker(clock FrameClock) *FrameTicker {
	if clock == nil {
		clock = DefaultFrameClock()
	}
	return &FrameTicker{clock: clock}
}

// Ticks returns an infinite sequence of frame timestamps.
//
// The sequence is lazy: a frame registration is placed on the clock only when
// the consumer awaits the next element, and exactly one registration is
// pending at a time. The registration is released whenever iteration stops,
// on context cancellation as well as on consumer break.
//
// If ctx is already cancelled the sequence yields nothing. Cancelling ctx
// while awaiting a frame terminates the sequence without a final element.
func (tk *FrameTicker) Ticks(ctx context.Context) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		frames := make(chan time.Time, 1)
		for {
			if ctx.Err() != nil {
				return
			}

			// A released registration may still fire once, drop its late frame.
			select {
			case <-frames:
			default:
			}

			cancel := tk.clock.ScheduleFrame(func(now time.Time) {
				select {
				case frames <- now:
				default:
				}
			})

			select {
			case <-ctx.Done():
				cancel()
				return
			case now := <-frames:
				cancel()
				if ctx.Err() != nil {
					return
				}
				if !yield(now) {
					return
				}
			}
		}
	}
}
