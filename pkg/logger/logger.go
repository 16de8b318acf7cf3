package logger

import (
	"io"
	"os"

	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// Config selects the verbosity and the destination of a Logger.
// It is passed down explicitly instead of being read from the environment.
type Config struct {
	// Verbose turns logging on at Info level when Level is empty.
	Verbose bool `mapstructure:"verbose"`

	// Level overrides the verbosity when set (Trace, Debug, Info, Warning, Error, Off).
	Level string `mapstructure:"level"`

	// File is "/dev/stderr" (default), "/dev/stdout", or a path to append to.
	File string `mapstructure:"file"`
}

// Logger is a leveled structured logger backed by charmbracelet/log.
type Logger struct {
	*charm.Logger
	closer io.Closer
}

// New creates a Logger from cfg. Without Verbose or an explicit Level the
// logger is silent.
func New(cfg Config) (*Logger, error) {
	level := LogLevelOff
	if cfg.Level != "" {
		parsed, err := ParseLogLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	} else if cfg.Verbose {
		level = LogLevelInfo
	}

	var (
		out    io.Writer
		closer io.Closer
	)
	switch cfg.File {
	case "", "/dev/stderr":
		out = os.Stderr
	case "/dev/stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", cfg.File)
		}
		out, closer = f, f
	}

	l := NewWithWriter(out)
	l.SetLevel(level.Level())
	l.closer = closer
	return l, nil
}

// NewWithWriter creates a Logger writing to w at Info level.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: charm.NewWithOptions(w, charm.Options{
			Level:           charm.InfoLevel,
			ReportTimestamp: false,
		}),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l := NewWithWriter(io.Discard)
	l.SetLevel(OffLevel)
	return l
}

// Trace logs at TraceLevel.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
