package stopwatch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errUtils "github.com/cloudposse/stopwatch/errors"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600

	base10    = 10
	bitSize64 = 64
)

// Format renders d as HH:MM:SS using whole seconds.
//
// Fractions of a second are truncated, never rounded. Hours are not capped, so
// 100 hours renders as "100:00:00". Negative durations render as "00:00:00".
func Format(d time.Duration) string {
	return FormatMilliseconds(d.Milliseconds())
}

// FormatMilliseconds is Format for an integer number of milliseconds.
func FormatMilliseconds(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	seconds := ms / 1000
	hh := seconds / secondsPerHour
	mm := (seconds / secondsPerMinute) % secondsPerMinute
	ss := seconds % secondsPerMinute

	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
}

// ParseMilliseconds reads a non-negative elapsed time.
//
// Supported formats:
//   - Integer milliseconds: "61000" → 61000
//   - Go duration: "1h1m1s" → 3661000, "250ms" → 250
func ParseMilliseconds(s string) (int64, error) {
	value := strings.TrimSpace(s)

	if ms, err := strconv.ParseInt(value, base10, bitSize64); err == nil {
		if ms < 0 {
			return 0, negativeDurationError(value)
		}
		return ms, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errUtils.Build(errUtils.ErrInvalidDuration).
			WithExplanation("Unrecognized elapsed time format").
			WithContext("value", value).
			WithHint("Use integer milliseconds such as 61000 or a duration such as 1h1m1s").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	if d < 0 {
		return 0, negativeDurationError(value)
	}

	return d.Milliseconds(), nil
}

func negativeDurationError(value string) error {
	return errUtils.Build(errUtils.ErrInvalidDuration).
		WithExplanation("Elapsed time cannot be negative").
		WithContext("value", value).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}
