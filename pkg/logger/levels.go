package logger

import (
	"strings"

	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	errUtils "github.com/cloudposse/tswig/errors"
)

// TraceLevel is one step more verbose than charm's DebugLevel.
const TraceLevel = charm.DebugLevel - 1

// OffLevel is above every level charm emits, so nothing is logged.
const OffLevel = charm.FatalLevel + 1

// LogLevel is the user-facing name of a log level.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
	LogLevelError   LogLevel = "Error"
)

// ParseLogLevel parses a level name case-insensitively. An empty string is Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch strings.ToLower(logLevel) {
	case "off":
		return LogLevelOff, nil
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarning, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, errUtils.Build(errUtils.ErrInvalidLogLevel).
			WithCause(errors.Newf("%q", logLevel)).
			WithHint("Supported log levels are Trace, Debug, Info, Warning, Error, Off").
			Err()
	}
}

// Level converts the name to a charm level.
func (l LogLevel) Level() charm.Level {
	switch l {
	case LogLevelOff:
		return OffLevel
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return charm.DebugLevel
	case LogLevelWarning:
		return charm.WarnLevel
	case LogLevelError:
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}
