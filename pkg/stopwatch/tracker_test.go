package stopwatch

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	testingclock "k8s.io/utils/clock/testing"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTracker(t *testing.T, opts ...Option) (*Tracker, *testingclock.FakeClock) {
	t.Helper()

	fc := testingclock.NewFakeClock(epoch)
	tr, err := New(fc, opts...)
	require.NoError(t, err)
	return tr, fc
}

// at moves the fake clock to the given offset from epoch.
func at(fc *testingclock.FakeClock, offset time.Duration) {
	fc.SetTime(epoch.Add(offset))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, errUtils.ErrNilClock)

	fc := testingclock.NewFakeClock(epoch)
	_, err = New(fc, WithTickInterval(0))
	assert.ErrorIs(t, err, errUtils.ErrInvalidTickInterval)
	assert.Equal(t, errUtils.ExitCodeUsage, errUtils.GetExitCode(err))

	_, err = New(fc, WithScheduler(nil))
	assert.ErrorIs(t, err, errUtils.ErrNilScheduler)

	tr, err := New(fc)
	require.NoError(t, err)
	assert.Equal(t, DefaultTickInterval, tr.TickInterval())
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(nil) })
}

func TestTracker_InitialState(t *testing.T) {
	tr, fc := newTracker(t)
	fc.Step(time.Hour)

	assert.Equal(t, Idle, tr.State())
	assert.Zero(t, tr.Elapsed())
	assert.True(t, tr.CanStart())
	assert.False(t, tr.CanStop())
	assert.False(t, tr.CanReset())
	assert.False(t, tr.HasElapsed())
	assert.Equal(t, "00:00:00", tr.String())
}

func TestTracker_PauseResumeScenario(t *testing.T) {
	tr, fc := newTracker(t)

	tr.Start()
	at(fc, 500*time.Millisecond)
	assert.Equal(t, int64(500), tr.ElapsedMilliseconds())

	tr.Stop()
	assert.Equal(t, int64(500), tr.ElapsedMilliseconds())

	at(fc, 9000*time.Millisecond)
	assert.Equal(t, int64(500), tr.ElapsedMilliseconds(), "stopped time must not accrue")

	tr.Start()
	at(fc, 9300*time.Millisecond)
	assert.Equal(t, int64(800), tr.ElapsedMilliseconds())
}

func TestTracker_SuspendedCallbacksDoNotAffectElapsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := scheduler.NewMockScheduler(ctrl)
	// The callback is registered but never invoked, as if the host were suspended.
	sched.EXPECT().Every(DefaultTickInterval, gomock.Any()).Return(scheduler.Handle(1)).Times(1)

	tr, fc := newTracker(t, WithScheduler(sched))

	tr.Start()
	at(fc, time.Minute)

	assert.Equal(t, int64(60_000), tr.ElapsedMilliseconds())
}

func TestTracker_StopPreservesMomentaryValue(t *testing.T) {
	tr, fc := newTracker(t)

	for i, step := range []time.Duration{137 * time.Millisecond, 2 * time.Second, 0, 45 * time.Minute} {
		tr.Start()
		fc.Step(step)

		before := tr.Elapsed()
		tr.Stop()
		after := tr.Elapsed()

		assert.Equal(t, before, after, "cycle %d", i)
		fc.Step(time.Second)
	}
}

func TestTracker_DoubleStartIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := scheduler.NewMockScheduler(ctrl)
	sched.EXPECT().Every(gomock.Any(), gomock.Any()).Return(scheduler.Handle(3)).Times(1)
	sched.EXPECT().Cancel(scheduler.Handle(3)).Times(1)

	tr, fc := newTracker(t, WithScheduler(sched))

	tr.Start()
	fc.Step(100 * time.Millisecond)
	tr.Start()
	fc.Step(100 * time.Millisecond)

	assert.Equal(t, 200*time.Millisecond, tr.Elapsed())

	tr.Stop()
	assert.Equal(t, 200*time.Millisecond, tr.Elapsed())
}

func TestTracker_ResetFromAnyState(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*Tracker, *testingclock.FakeClock)
	}{
		{name: "idle", prepare: func(*Tracker, *testingclock.FakeClock) {}},
		{name: "running", prepare: func(tr *Tracker, fc *testingclock.FakeClock) {
			tr.Start()
			fc.Step(3 * time.Second)
		}},
		{name: "stopped", prepare: func(tr *Tracker, fc *testingclock.FakeClock) {
			tr.Start()
			fc.Step(3 * time.Second)
			tr.Stop()
		}},
		{name: "stopped with zero elapsed", prepare: func(tr *Tracker, _ *testingclock.FakeClock) {
			tr.Start()
			tr.Stop()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, fc := newTracker(t)
			tt.prepare(tr, fc)

			tr.Reset()
			assert.Zero(t, tr.Elapsed())
			assert.Equal(t, Idle, tr.State())

			fc.Step(time.Minute)
			assert.Zero(t, tr.Elapsed(), "reset must not keep accruing")
			assert.False(t, tr.CanReset())
		})
	}
}

func TestTracker_MonotonicBetweenResets(t *testing.T) {
	tr, fc := newTracker(t)
	rng := rand.New(rand.NewSource(42))

	var last time.Duration
	for i := 0; i < 2000; i++ {
		switch rng.Intn(5) {
		case 0:
			tr.Start()
		case 1:
			tr.Stop()
		case 2:
			tr.Toggle()
		default:
			fc.Step(time.Duration(rng.Intn(5000)) * time.Millisecond)
		}

		current := tr.Elapsed()
		require.GreaterOrEqual(t, current, last, "step %d", i)
		require.GreaterOrEqual(t, current, time.Duration(0))
		last = current
	}
}

func TestTracker_ClockSteppingBackwards(t *testing.T) {
	tr, fc := newTracker(t)
	at(fc, time.Second)

	tr.Start()
	at(fc, 1500*time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, tr.Elapsed())

	// Wall clock adjusted backwards past the run start.
	at(fc, 0)
	assert.Equal(t, 500*time.Millisecond, tr.Elapsed(), "elapsed must not decrease")

	tr.Stop()
	assert.Equal(t, 500*time.Millisecond, tr.Elapsed())

	tr.Start()
	at(fc, -time.Hour)
	assert.Equal(t, 500*time.Millisecond, tr.Elapsed(), "a new run never contributes negative time")

	at(fc, 0)
	assert.Equal(t, 500*time.Millisecond, tr.Elapsed())
	at(fc, 200*time.Millisecond)
	assert.Equal(t, 700*time.Millisecond, tr.Elapsed())
}

func TestTracker_StopAndResetCancelSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := scheduler.NewMockScheduler(ctrl)

	gomock.InOrder(
		sched.EXPECT().Every(250*time.Millisecond, gomock.Any()).Return(scheduler.Handle(1)),
		sched.EXPECT().Cancel(scheduler.Handle(1)),
		sched.EXPECT().Every(250*time.Millisecond, gomock.Any()).Return(scheduler.Handle(2)),
		sched.EXPECT().Cancel(scheduler.Handle(2)),
	)

	tr, _ := newTracker(t, WithScheduler(sched), WithTickInterval(250*time.Millisecond))

	tr.Start()
	tr.Stop()
	tr.Stop()  // already stopped, no second cancel
	tr.Start() // fresh schedule
	tr.Reset()
	tr.Reset() // nothing left to cancel
}

func TestTracker_RefreshOnTicksAndTransitions(t *testing.T) {
	fc := testingclock.NewFakeClock(epoch)
	sched := scheduler.NewTickerScheduler(fc)
	defer sched.Close()

	refreshes := make(chan Snapshot, 64)
	tr, err := New(fc,
		WithScheduler(sched),
		WithTickInterval(200*time.Millisecond),
		WithRefresh(func(s Snapshot) { refreshes <- s }),
	)
	require.NoError(t, err)

	tr.Start()
	assert.Equal(t, Snapshot{State: Running}, <-refreshes)
	assert.Equal(t, 1, sched.Active())

	fc.Step(200 * time.Millisecond)
	select {
	case snap := <-refreshes:
		assert.Equal(t, Running, snap.State)
		assert.Equal(t, 200*time.Millisecond, snap.Elapsed)
	case <-time.After(time.Second):
		t.Fatal("tick refresh not delivered")
	}

	tr.Stop()
	assert.Equal(t, Snapshot{State: Stopped, Elapsed: 200 * time.Millisecond}, <-refreshes)
	assert.Equal(t, 0, sched.Active())

	fc.Step(time.Second)
	assert.Never(t, func() bool { return len(refreshes) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"no refresh after stop")

	tr.Reset()
	assert.Equal(t, Snapshot{State: Idle}, <-refreshes)
}

func TestTracker_TickCountIsNotElapsedTime(t *testing.T) {
	fc := testingclock.NewFakeClock(epoch)
	sched := scheduler.NewTickerScheduler(fc)
	defer sched.Close()

	var mu sync.Mutex
	var ticks int
	tr := MustNew(fc, WithScheduler(sched), WithRefresh(func(Snapshot) {
		mu.Lock()
		ticks++
		mu.Unlock()
	}))

	tr.Start()
	fc.Step(time.Minute)

	assert.Equal(t, time.Minute, tr.Elapsed())
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		// One call from Start plus a single coalesced tick, nowhere near 300.
		return ticks == 2
	}, time.Second, 5*time.Millisecond)

	tr.Stop()
}

func TestTracker_Toggle(t *testing.T) {
	tr, fc := newTracker(t)

	tr.Toggle()
	assert.True(t, tr.IsRunning())

	fc.Step(time.Second)
	tr.Toggle()
	assert.False(t, tr.IsRunning())
	assert.Equal(t, Stopped, tr.State())
	assert.Equal(t, time.Second, tr.Elapsed())
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	fc := testingclock.NewFakeClock(epoch)
	sched := scheduler.NewTickerScheduler(fc)
	defer sched.Close()

	tr := MustNew(fc, WithScheduler(sched), WithRefresh(func(Snapshot) {}))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch (w + i) % 4 {
				case 0:
					tr.Start()
				case 1:
					tr.Stop()
				case 2:
					fc.Step(time.Millisecond)
				default:
					assert.GreaterOrEqual(t, tr.Elapsed(), time.Duration(0))
				}
			}
		}(w)
	}
	wg.Wait()

	tr.Reset()
	assert.Equal(t, 0, sched.Active())
}

func TestSnapshot_Flags(t *testing.T) {
	tests := []struct {
		name       string
		snap       Snapshot
		canStart   bool
		canStop    bool
		canReset   bool
		hasElapsed bool
	}{
		{name: "idle", snap: Snapshot{State: Idle}, canStart: true},
		{name: "running", snap: Snapshot{State: Running, Elapsed: time.Second}, canStop: true, canReset: true, hasElapsed: true},
		{name: "running at zero", snap: Snapshot{State: Running}, canStop: true, canReset: true},
		{name: "stopped", snap: Snapshot{State: Stopped, Elapsed: time.Second}, canStart: true, canReset: true, hasElapsed: true},
		{name: "stopped at zero", snap: Snapshot{State: Stopped}, canStart: true, canReset: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canStart, tt.snap.CanStart())
			assert.Equal(t, tt.canStop, tt.snap.CanStop())
			assert.Equal(t, tt.canReset, tt.snap.CanReset())
			assert.Equal(t, tt.hasElapsed, tt.snap.HasElapsed())
			assert.Equal(t, tt.snap.State == Running, tt.snap.IsRunning())
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
