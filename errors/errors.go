package errors

import (
	"github.com/cockroachdb/errors"
)

// Static sentinel errors. Wrap these with Build() to attach hints and context.
var (
	ErrNilClock            = errors.New("clock must not be nil")
	ErrNilScheduler        = errors.New("scheduler must not be nil")
	ErrInvalidTickInterval = errors.New("invalid tick interval")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrReadConfig          = errors.New("failed to read config file")
	ErrUIFailed            = errors.New("stopwatch UI failed")
	ErrMissingArgument     = errors.New("missing argument")
	ErrInterrupted         = errors.New("interrupted")
)

// Exit codes used by the CLI.
const (
	ExitCodeError       = 1
	ExitCodeUsage       = 2
	ExitCodeInterrupted = 130
)
