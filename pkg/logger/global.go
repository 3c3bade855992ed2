// Package logger holds the process-wide charm logger used by the stopwatch.
package logger

import (
	"io"
	"os"
	"sync/atomic"

	log "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// TraceLevel sits one step below debug.
const TraceLevel = log.DebugLevel - 1

var defaultLogger atomic.Pointer[log.Logger]

func init() {
	defaultLogger.Store(New(os.Stderr))
}

// Default returns the global logger.
func Default() *log.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the global logger. A nil logger is ignored.
func SetDefault(l *log.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// New returns a logger writing to w with the stopwatch level styles.
func New(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           log.InfoLevel,
	})
	l.SetStyles(Styles())
	return l
}

// SetColorProfile forwards the terminal color profile to the global logger.
func SetColorProfile(profile termenv.Profile) {
	Default().SetColorProfile(profile)
}

// SetLevel sets the level of the global logger.
func SetLevel(level log.Level) {
	Default().SetLevel(level)
}

// GetLevel returns the level of the global logger.
func GetLevel() log.Level {
	return Default().GetLevel()
}

func Trace(msg any, keyvals ...any) {
	Default().Log(TraceLevel, msg, keyvals...)
}

func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}
