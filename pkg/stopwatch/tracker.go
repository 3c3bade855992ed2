// Package stopwatch tracks elapsed time across start/stop/reset cycles.
//
// Elapsed time is always derived from the clock at query time: accumulated time
// from finished runs plus the distance from the current run's start to now.
// Periodic refresh callbacks only read that value. A refresh that is late,
// dropped or suspended for minutes cannot corrupt it.
package stopwatch

import (
	"sync"
	"time"

	"k8s.io/utils/clock"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/logger"
	"github.com/cloudposse/stopwatch/pkg/scheduler"
)

// Tracker is a pausable stopwatch. It is safe for concurrent use.
type Tracker struct {
	clock        clock.PassiveClock
	scheduler    scheduler.Scheduler
	tickInterval time.Duration
	refresh      func(Snapshot)

	mu          sync.Mutex
	state       State
	accumulated time.Duration
	// runStart is meaningful only while state == Running.
	runStart time.Time
	// runPeak is the largest delta observed in the current run. It keeps Elapsed
	// from going backwards if the clock steps back.
	runPeak   time.Duration
	handle    scheduler.Handle
	scheduled bool
}

// New returns an Idle tracker reading time from clk.
func New(clk clock.PassiveClock, opts ...Option) (*Tracker, error) {
	if clk == nil {
		return nil, errUtils.Build(errUtils.ErrNilClock).
			WithExplanation("A stopwatch needs a time source").
			WithHint("Pass clock.RealClock{} from k8s.io/utils/clock").
			Err()
	}

	cfg := config{tickInterval: DefaultTickInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.schedulerSet && cfg.scheduler == nil {
		return nil, errUtils.Build(errUtils.ErrNilScheduler).
			WithExplanation("WithScheduler was given a nil scheduler").
			WithHint("Pass scheduler.NewTickerScheduler(clk) or drop the option").
			Err()
	}

	if cfg.tickInterval <= 0 {
		return nil, errUtils.Build(errUtils.ErrInvalidTickInterval).
			WithExplanation("The refresh tick interval must be positive").
			WithContext("tick_interval", cfg.tickInterval.String()).
			WithHintf("Use a value such as %s", DefaultTickInterval).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	return &Tracker{
		clock:        clk,
		scheduler:    cfg.scheduler,
		tickInterval: cfg.tickInterval,
		refresh:      cfg.refresh,
	}, nil
}

// MustNew is New for static wiring; it panics on invalid options.
func MustNew(clk clock.PassiveClock, opts ...Option) *Tracker {
	t, err := New(clk, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Start begins a run. It does nothing if the tracker is already running, so a
// second Start never opens an overlapping interval or a second schedule.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.state == Running {
		t.mu.Unlock()
		return
	}

	t.state = Running
	t.runStart = t.clock.Now()
	t.runPeak = 0
	if t.scheduler != nil {
		t.handle = t.scheduler.Every(t.tickInterval, t.tick)
		t.scheduled = true
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	logger.Debug("Stopwatch started", "elapsed", snap.Elapsed)
	t.notify(snap)
}

// Stop ends the current run and freezes elapsed time. It does nothing unless running.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return
	}

	t.accumulated += t.runDeltaLocked()
	t.state = Stopped
	t.runStart = time.Time{}
	t.runPeak = 0
	h, cancel := t.releaseScheduleLocked()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if cancel {
		t.scheduler.Cancel(h)
	}

	logger.Debug("Stopwatch stopped", "elapsed", snap.Elapsed)
	t.notify(snap)
}

// Reset returns the tracker to Idle with zero elapsed time, from any state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.state = Idle
	t.accumulated = 0
	t.runStart = time.Time{}
	t.runPeak = 0
	h, cancel := t.releaseScheduleLocked()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if cancel {
		t.scheduler.Cancel(h)
	}

	logger.Debug("Stopwatch reset")
	t.notify(snap)
}

// Toggle stops a running tracker and starts any other.
func (t *Tracker) Toggle() {
	if t.IsRunning() {
		t.Stop()
		return
	}
	t.Start()
}

// Elapsed returns the total time accrued while running since the last reset.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.elapsedLocked()
}

// ElapsedMilliseconds is Elapsed in whole milliseconds.
func (t *Tracker) ElapsedMilliseconds() int64 {
	return t.Elapsed().Milliseconds()
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Snapshot returns state and elapsed time observed together.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshotLocked()
}

// TickInterval returns the configured refresh cadence.
func (t *Tracker) TickInterval() time.Duration {
	return t.tickInterval
}

func (t *Tracker) IsRunning() bool  { return t.Snapshot().IsRunning() }
func (t *Tracker) HasElapsed() bool { return t.Snapshot().HasElapsed() }
func (t *Tracker) CanStart() bool   { return t.Snapshot().CanStart() }
func (t *Tracker) CanStop() bool    { return t.Snapshot().CanStop() }
func (t *Tracker) CanReset() bool   { return t.Snapshot().CanReset() }

// String renders the elapsed time as HH:MM:SS.
func (t *Tracker) String() string {
	return Format(t.Elapsed())
}

func (t *Tracker) elapsedLocked() time.Duration {
	if t.state != Running {
		return t.accumulated
	}
	return t.accumulated + t.runDeltaLocked()
}

// runDeltaLocked measures the current run, clamped so a clock that steps
// backwards neither goes negative nor undoes time already reported.
func (t *Tracker) runDeltaLocked() time.Duration {
	delta := t.clock.Since(t.runStart)
	if delta < t.runPeak {
		return t.runPeak
	}
	t.runPeak = delta
	return delta
}

func (t *Tracker) releaseScheduleLocked() (scheduler.Handle, bool) {
	h, ok := t.handle, t.scheduled
	t.handle = 0
	t.scheduled = false
	return h, ok
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		State:   t.state,
		Elapsed: t.elapsedLocked(),
	}
}

func (t *Tracker) tick() {
	t.notify(t.Snapshot())
}

func (t *Tracker) notify(snap Snapshot) {
	if t.refresh != nil {
		t.refresh(snap)
	}
}
