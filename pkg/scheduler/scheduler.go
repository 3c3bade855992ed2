// Package scheduler runs a callback periodically until it is cancelled.
package scheduler

import (
	"time"
)

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

// Handle identifies one periodic schedule.
type Handle uint64

// Scheduler invokes callbacks approximately every interval.
//
// Firings may be late, coalesced or dropped (for example while the process is
// suspended), so callers must not count them to measure time.
type Scheduler interface {
	// Every starts calling fn every interval and returns a handle for Cancel.
	Every(interval time.Duration, fn func()) Handle

	// Cancel stops the schedule. Once Cancel returns, fn will not be called again
	// for that handle. Cancelling an unknown or already-cancelled handle is a no-op.
	Cancel(h Handle)
}
