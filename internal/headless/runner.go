// Package headless runs the stopwatch without a terminal UI, logging the elapsed time on every tick.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"k8s.io/utils/clock"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/logger"
	"github.com/cloudposse/stopwatch/pkg/scheduler"
	"github.com/cloudposse/stopwatch/pkg/stopwatch"
)

// Options configures a headless run.
type Options struct {
	Clock        clock.WithTicker
	TickInterval time.Duration
	// Duration stops the run after this long. Zero runs until ctx is cancelled.
	Duration time.Duration
	// Out receives the final HH:MM:SS line.
	Out io.Writer
}

// Run starts a stopwatch immediately and stops it when ctx is done or Duration has passed.
// It returns the final snapshot after writing its formatted time to Out.
func Run(ctx context.Context, opts Options) (stopwatch.Snapshot, error) {
	if opts.Duration < 0 {
		return stopwatch.Snapshot{}, errUtils.Build(errUtils.ErrInvalidDuration).
			WithExplanation("duration cannot be negative").
			WithContext("duration", opts.Duration.String()).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	sched := scheduler.NewTickerScheduler(opts.Clock)
	defer sched.Close()

	tracker, err := stopwatch.New(opts.Clock,
		stopwatch.WithScheduler(sched),
		stopwatch.WithTickInterval(opts.TickInterval),
		stopwatch.WithRefresh(logSnapshot),
	)
	if err != nil {
		return stopwatch.Snapshot{}, err
	}

	logger.Info("Starting stopwatch", "tick_interval", opts.TickInterval, "duration", opts.Duration)
	tracker.Start()

	var deadline <-chan time.Time
	if opts.Duration > 0 {
		timer := opts.Clock.NewTimer(opts.Duration)
		defer timer.Stop()
		deadline = timer.C()
	}

	select {
	case <-ctx.Done():
		logger.Debug("Stopwatch interrupted", "reason", context.Cause(ctx))
	case <-deadline:
		logger.Debug("Stopwatch duration reached")
	}

	tracker.Stop()
	snap := tracker.Snapshot()

	if _, err := fmt.Fprintln(opts.Out, snap.Formatted()); err != nil {
		return snap, err
	}

	return snap, nil
}

func logSnapshot(s stopwatch.Snapshot) {
	logger.Info("Elapsed", "elapsed", s.Formatted(), "state", s.State)
}
