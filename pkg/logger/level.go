package logger

import (
	"strings"

	log "github.com/charmbracelet/log"

	errUtils "github.com/cloudposse/stopwatch/errors"
)

// ParseLevel maps a configured level name to a charm log level.
// An empty string means info.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return log.InfoLevel, nil
	case "trace":
		return TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	default:
		return log.InfoLevel, errUtils.Build(errUtils.ErrInvalidLogLevel).
			WithContext("level", name).
			WithHint("Supported levels: trace, debug, info, warn, error, fatal").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
}
