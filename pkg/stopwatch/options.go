package stopwatch

import (
	"time"

	"github.com/cloudposse/stopwatch/pkg/scheduler"
)

// DefaultTickInterval is the display refresh cadence.
const DefaultTickInterval = 200 * time.Millisecond

// Option configures a Tracker.
type Option func(*config)

type config struct {
	scheduler    scheduler.Scheduler
	schedulerSet bool
	tickInterval time.Duration
	refresh      func(Snapshot)
}

// WithScheduler drives the refresh callback every tick interval while running.
// Omit the option for a tracker without periodic refresh; passing nil is an error.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
		c.schedulerSet = true
	}
}

// WithTickInterval sets the refresh cadence. It must be positive.
func WithTickInterval(d time.Duration) Option {
	return func(c *config) {
		c.tickInterval = d
	}
}

// WithRefresh registers a function that receives a snapshot on every scheduler tick
// and after every Start, Stop and Reset. It is only ever handed a copy of the state.
func WithRefresh(fn func(Snapshot)) Option {
	return func(c *config) {
		c.refresh = fn
	}
}
