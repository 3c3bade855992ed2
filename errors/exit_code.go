package errors

import (
	"os"

	"github.com/cockroachdb/errors"
)

// OsExit is swapped out in tests so exit paths can be asserted without terminating the process.
var OsExit = os.Exit

type exitCoder struct {
	cause error
	code  int
}

func (e *exitCoder) Error() string { return e.cause.Error() }

func (e *exitCoder) Cause() error { return e.cause }

func (e *exitCoder) Unwrap() error { return e.cause }

// ExitCode returns the attached exit code.
func (e *exitCoder) ExitCode() int { return e.code }

// WithExitCode attaches an exit code to err. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitCoder{cause: err, code: code}
}

// GetExitCode returns 0 for nil, the attached exit code if any, or 1.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec *exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return ExitCodeError
}
