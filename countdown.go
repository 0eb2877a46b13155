package countdown

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/countdown/internal/types"
)

// State represents a countdown timer state.
type State string

// Countdown timer states.
const (
	StateStandby State = "standby"
	StateActive  State = "active"
	StatePaused  State = "paused"
	StateDone    State = "done"
)

// StateChangedHandler handles timer state changes.
type StateChangedHandler = func(ctx context.Context, from, to State)

// ProgressHandler handles countdown progress updates.
type ProgressHandler = func(ctx context.Context, progress float64)

// CompletionHandler handles countdown completion.
type CompletionHandler = func(ctx context.Context)

const timerCtxKey types.ContextKey = "countdown_timer"

// TimerFromContext returns the timer stored in ctx.
// Timer callbacks receive a context carrying the timer that invoked them.
func TimerFromContext(ctx context.Context) (*Timer, bool) {
	t, ok := ctx.Value(timerCtxKey).(*Timer)
	return t, ok
}

// Timer is a countdown timer driven by a frame clock.
//
// The timer begins in the standby state. Start moves it to the active state
// and subscribes to the clock's frames, converting elapsed time into a
// progress value in [0, 1]. When progress reaches 1 the timer moves to the
// done state and reports completion exactly once for that cycle. Pause and
// Resume suspend and continue the countdown with the progress preserved.
// Lifecycle calls not allowed in the current state are silent no-ops.
//
// All methods are safe for concurrent use.
type Timer struct {
	dur        time.Duration
	clock      FrameClock
	fsm        *stateless.StateMachine
	onComplete CompletionHandler
	stats      *StatsRecorder
	log        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	cycle atomic.Pointer[tickCycle]

	mu       sync.RWMutex
	progress float64
	anchor   time.Time

	onStateChanged types.CallbackManager[StateChangedHandler]
	onProgress     types.CallbackManager[ProgressHandler]

	closing   atomic.Bool
	closeOnce sync.Once
}

// New creates a new countdown [Timer] with the given duration.
// Options are optional, if nil, default values are used (see [Options]).
func New(d time.Duration, opts *Options) (*Timer, error) {
	if d <= 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("non-positive duration %v", d))
	}

	t := &Timer{
		dur:        d,
		clock:      opts.clock(),
		onComplete: opts.onComplete(),
		stats:      opts.stats(),
		log:        opts.log(),
	}
	t.ctx, t.cancel = context.WithCancel(
		context.WithValue(context.Background(), timerCtxKey, t),
	)
	t.initFSM()
	return t, nil
}

// tickCycle carries the cancellation scope of one active countdown cycle.
// Each transition into the active state installs a fresh cycle, superseded
// cycles are cancelled and their remaining ticks are dropped.
type tickCycle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

const (
	tmrEvtStart  = "start"
	tmrEvtTick   = "tick"
	tmrEvtPause  = "pause"
	tmrEvtResume = "resume"
	tmrEvtDone   = "done"
)

func (t *Timer) initFSM() {
	fsm := stateless.NewStateMachineWithMode(StateStandby, stateless.FiringQueued)

	fsm.SetTriggerParameters(tmrEvtTick, reflect.TypeOf(time.Time{}), reflect.TypeOf((*tickCycle)(nil)))
	fsm.SetTriggerParameters(tmrEvtDone, reflect.TypeOf((*tickCycle)(nil)))

	fsm.Configure(StateStandby).
		Permit(tmrEvtStart, StateActive)

	fsm.Configure(StateActive).
		OnEntryFrom(tmrEvtStart, t.actStart).
		OnEntryFrom(tmrEvtResume, t.actResume).
		InternalTransition(tmrEvtTick, t.actTick, t.guardCurrentCycle).
		PermitReentry(tmrEvtStart).
		Permit(tmrEvtPause, StatePaused).
		Permit(tmrEvtDone, StateDone, t.guardCurrentCycle)

	fsm.Configure(StatePaused).
		OnEntry(t.actPaused).
		Permit(tmrEvtStart, StateActive).
		Permit(tmrEvtResume, StateActive)

	fsm.Configure(StateDone).
		OnEntry(t.actDone).
		Permit(tmrEvtStart, StateActive)

	fsm.OnUnhandledTrigger(func(ctx context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
		if trigger == tmrEvtTick {
			t.stats.staleTicks.Add(1)
		}

		t.log.LogAttrs(ctx, slog.LevelDebug, "countdown event skipped",
			slog.Any("timer", t),
			slog.Any("event", trigger),
			slog.Any("state", state),
		)
		return nil
	})

	fsm.OnTransitioned(func(ctx context.Context, tr stateless.Transition) {
		from, _ := tr.Source.(State)
		to, _ := tr.Destination.(State)

		t.log.LogAttrs(ctx, slog.LevelDebug, "countdown state changed",
			slog.Any("timer", t),
			slog.Any("from", from),
			slog.Any("to", to),
		)

		if to == StateActive && from != StateActive {
			t.stats.activeTmrs.Add(1)
		}
		if from == StateActive && to != StateActive {
			t.stats.activeTmrs.Add(-1)
		}

		for fn := range t.onStateChanged.All() {
			fn(ctx, from, to)
		}
	})

	t.fsm = fsm
}

// Start begins a new countdown cycle from zero progress.
// It is allowed in any state: an already running or finished countdown
// starts over, superseding the previous cycle.
func (t *Timer) Start() { t.fire(t.ctx, tmrEvtStart) }

// Restart is an alias of [Timer.Start].
func (t *Timer) Restart() { t.Start() }

// Pause suspends the countdown preserving its progress.
// It is a no-op unless the timer is active.
func (t *Timer) Pause() { t.fire(t.ctx, tmrEvtPause) }

// Resume continues a paused countdown from the preserved progress.
// It is a no-op unless the timer is paused.
func (t *Timer) Resume() { t.fire(t.ctx, tmrEvtResume) }

// Close releases the timer's frame subscription and drops all further
// lifecycle calls and ticks. The timer keeps its last state and progress.
// Close is safe to call multiple times.
func (t *Timer) Close() {
	t.closeOnce.Do(func() {
		t.closing.Store(true)
		t.dropTickCycle()
		t.cancel()

		t.log.LogAttrs(t.ctx, slog.LevelDebug, "countdown timer closed", slog.Any("timer", t))
	})
}

// Context returns the timer's context.
// It is cancelled when the timer is closed.
func (t *Timer) Context() context.Context { return t.ctx }

// Duration returns the full countdown duration.
func (t *Timer) Duration() time.Duration { return t.dur }

// State returns the current timer state.
func (t *Timer) State() State {
	return t.fsm.MustState().(State) //nolint:forcetypeassert
}

// Progress returns the countdown progress as a value in [0, 1].
// It never decreases within a cycle and freezes while the timer is paused.
func (t *Timer) Progress() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress
}

// Elapsed returns the elapsed part of the countdown duration.
// Like [Timer.Progress] it freezes while the timer is paused.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.Progress() * float64(t.dur))
}

// Remaining returns the remaining part of the countdown duration.
func (t *Timer) Remaining() time.Duration {
	return t.dur - t.Elapsed()
}

// Stats returns a report from the timer's statistics recorder.
func (t *Timer) Stats() StatsReport {
	return t.stats.Report()
}

// Snapshot returns a read-only view of the timer state.
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Time:      time.Now(),
		State:     t.State(),
		Duration:  t.dur,
		Progress:  t.Progress(),
		Elapsed:   t.Elapsed(),
		Remaining: t.Remaining(),
	}
}

// MarshalJSON implements [json.Marshaler].
func (t *Timer) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(json.Marshal(t.Snapshot()))
}

// LogValue implements [slog.LogValuer].
func (t *Timer) LogValue() slog.Value {
	if t == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Duration("duration", t.dur),
		slog.Any("state", t.State()),
		slog.Float64("progress", t.Progress()),
	)
}

// OnStateChanged registers a callback to be called when the timer changes state.
//
// The callback will be called with the timer's context, see [Timer.Context].
// The timer can be retrieved from the context using [TimerFromContext].
//
// The callback can be canceled by calling the returned cancel function.
// Multiple callbacks can be registered.
func (t *Timer) OnStateChanged(fn StateChangedHandler) (cancel func()) {
	return t.onStateChanged.Add(fn)
}

// OnProgress registers a callback to be called on each countdown progress update.
//
// The callback will be called with the timer's context, see [Timer.Context].
// The timer can be retrieved from the context using [TimerFromContext].
//
// The callback can be canceled by calling the returned cancel function.
// Multiple callbacks can be registered.
func (t *Timer) OnProgress(fn ProgressHandler) (cancel func()) {
	return t.onProgress.Add(fn)
}

func (t *Timer) fire(ctx context.Context, evt string, args ...any) {
	if t.closing.Load() {
		t.log.LogAttrs(ctx, slog.LevelDebug, "countdown event dropped",
			slog.Any("timer", t),
			slog.Any("event", evt),
			slog.Any("error", ErrTimerClosed),
		)
		return
	}

	if err := t.fsm.FireCtx(ctx, evt, args...); err != nil {
		panic(fmt.Errorf("fire %q in state %q: %w", evt, t.State(), err))
	}
}

// guardCurrentCycle accepts an event only if it carries the current tick cycle.
// Events of superseded cycles fail the guard and fall through as unhandled.
func (t *Timer) guardCurrentCycle(_ context.Context, args ...any) bool {
	cyc, _ := args[len(args)-1].(*tickCycle)
	return cyc != nil && t.cycle.Load() == cyc
}

func (t *Timer) newTickCycle() *tickCycle {
	ctx, cancel := context.WithCancel(t.ctx)
	cyc := &tickCycle{ctx: ctx, cancel: cancel}
	if old := t.cycle.Swap(cyc); old != nil {
		old.cancel()
	}
	return cyc
}

func (t *Timer) dropTickCycle() {
	if old := t.cycle.Swap(nil); old != nil {
		old.cancel()
	}
}

func (t *Timer) actStart(ctx context.Context, _ ...any) error {
	now := t.clock.Now()

	t.mu.Lock()
	t.progress = 0
	t.anchor = now
	t.mu.Unlock()

	cyc := t.newTickCycle()
	t.stats.cyclesStarted.Add(1)

	t.log.LogAttrs(ctx, slog.LevelDebug, "countdown started",
		slog.Any("timer", t),
		slog.Time("ends_at", now.Add(t.dur)),
	)

	go t.run(cyc)
	return nil
}

func (t *Timer) actResume(ctx context.Context, _ ...any) error {
	now := t.clock.Now()

	t.mu.Lock()
	t.anchor = now.Add(-time.Duration(t.progress * float64(t.dur)))
	t.mu.Unlock()

	cyc := t.newTickCycle()
	t.stats.cyclesResumed.Add(1)

	t.log.LogAttrs(ctx, slog.LevelDebug, "countdown resumed",
		slog.Any("timer", t),
		slog.Time("ends_at", now.Add(t.Remaining())),
	)

	go t.run(cyc)
	return nil
}

func (t *Timer) actPaused(ctx context.Context, _ ...any) error {
	t.dropTickCycle()

	t.mu.Lock()
	t.anchor = time.Time{}
	t.mu.Unlock()

	t.stats.cyclesPaused.Add(1)

	t.log.LogAttrs(ctx, slog.LevelDebug, "countdown paused",
		slog.Any("timer", t),
		slog.Float64("progress", t.Progress()),
	)
	return nil
}

func (t *Timer) actTick(ctx context.Context, args ...any) error {
	now := args[0].(time.Time)  //nolint:forcetypeassert
	cyc := args[1].(*tickCycle) //nolint:forcetypeassert

	p := t.progressAt(now)

	t.mu.Lock()
	t.progress = p
	t.mu.Unlock()

	t.stats.ticks.Add(1)

	for fn := range t.onProgress.All() {
		fn(ctx, p)
	}

	if p >= 1 {
		t.fire(ctx, tmrEvtDone, cyc)
	}
	return nil
}

func (t *Timer) actDone(ctx context.Context, _ ...any) error {
	t.dropTickCycle()

	t.mu.Lock()
	t.progress = 1
	t.anchor = time.Time{}
	t.mu.Unlock()

	t.stats.cyclesCompleted.Add(1)

	t.log.LogAttrs(ctx, slog.LevelDebug, "countdown done", slog.Any("timer", t))

	if t.onComplete != nil {
		t.onComplete(ctx)
	}
	return nil
}

// progressAt converts a frame timestamp into a progress value,
// clamped to [0, 1] relative to the current cycle anchor.
func (t *Timer) progressAt(now time.Time) float64 {
	t.mu.RLock()
	anchor := t.anchor
	t.mu.RUnlock()

	elapsed := now.Sub(anchor)
	if elapsed <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(t.dur), 1)
}

// run drives one countdown cycle pulling frame ticks until the cycle is
// cancelled. Stale ticks of superseded cycles are dropped before firing,
// the cycle guard inside the state machine drops the rest.
func (t *Timer) run(cyc *tickCycle) {
	tkr := NewFrameTicker(t.clock)
	for now := range tkr.Ticks(cyc.ctx) {
		if t.cycle.Load() != cyc {
			t.stats.staleTicks.Add(1)
			return
		}
		t.fire(cyc.ctx, tmrEvtTick, now, cyc)
	}
}
