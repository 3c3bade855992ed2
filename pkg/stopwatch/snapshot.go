package stopwatch

import "time"

// Snapshot is a consistent view of a Tracker at one instant.
type Snapshot struct {
	State   State
	Elapsed time.Duration
}

// Formatted renders Elapsed as HH:MM:SS.
func (s Snapshot) Formatted() string {
	return Format(s.Elapsed)
}

// Milliseconds is Elapsed in whole milliseconds.
func (s Snapshot) Milliseconds() int64 {
	return s.Elapsed.Milliseconds()
}

func (s Snapshot) IsRunning() bool {
	return s.State == Running
}

// HasElapsed reports whether any time has accrued since the last reset.
func (s Snapshot) HasElapsed() bool {
	return s.Elapsed > 0
}

// CanStart is false only while running.
func (s Snapshot) CanStart() bool {
	return s.State != Running
}

// CanStop is true only while running.
func (s Snapshot) CanStop() bool {
	return s.State == Running
}

// CanReset is false only for an idle tracker with nothing to clear.
func (s Snapshot) CanReset() bool {
	return s.State != Idle || s.HasElapsed()
}
