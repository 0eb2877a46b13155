package countdown

import (
	"log/slog"

	"github.com/ghettovoice/countdown/log"
)

// Options contains options for a countdown timer.
type Options struct {
	// Clock is the frame clock that drives the timer.
	// If nil, the [DefaultFrameClock] is used.
	Clock FrameClock
	// OnComplete is called once per start cycle when the countdown
	// reaches the done state.
	OnComplete CompletionHandler
	// Stats is the recorder for timer statistics.
	// If nil, the timer records into its own private recorder.
	Stats *StatsRecorder
	// Logger is the logger that will be used with the timer.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
}

func (o *Options) clock() FrameClock {
	if o == nil || o.Clock == nil {
		return DefaultFrameClock()
	}
	return o.Clock
}

func (o *Options) onComplete() CompletionHandler {
	if o == nil {
		return nil
	}
	return o.OnComplete
}

func (o *Options) stats() *StatsRecorder {
	if o == nil || o.Stats == nil {
		return new(StatsRecorder)
	}
	return o.Stats
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}
