package stopwatch

// State is the tracker's position in its start/stop/reset lifecycle.
type State int

const (
	// Idle is the initial state and the state after Reset. Elapsed is zero.
	Idle State = iota
	// Running accrues time against the clock.
	Running
	// Stopped is paused with elapsed time frozen.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
