package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tswig/errors"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		hasError bool
	}{
		{"", LogLevelInfo, false},
		{"Trace", LogLevelTrace, false},
		{"debug", LogLevelDebug, false},
		{"Info", LogLevelInfo, false},
		{"warn", LogLevelWarning, false},
		{"Warning", LogLevelWarning, false},
		{"ERROR", LogLevelError, false},
		{"Off", LogLevelOff, false},
		{"loud", LogLevelInfo, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLogLevel(test.input)
			if test.hasError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, errUtils.ErrInvalidLogLevel))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, level)
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	assert.Equal(t, charm.DebugLevel-1, TraceLevel)
	assert.Greater(t, int(OffLevel), int(charm.FatalLevel))
	assert.Equal(t, OffLevel, LogLevelOff.Level())
	assert.Equal(t, charm.WarnLevel, LogLevelWarning.Level())
}

func TestNew_SilentWithoutVerbose(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, OffLevel, l.GetLevel())
}

func TestNew_VerboseIsInfo(t *testing.T) {
	l, err := New(Config{Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, charm.InfoLevel, l.GetLevel())
}

func TestNew_ExplicitLevelWins(t *testing.T) {
	l, err := New(Config{Verbose: true, Level: "Debug"})
	require.NoError(t, err)

	assert.Equal(t, charm.DebugLevel, l.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})

	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tswig.log")

	l, err := New(Config{Verbose: true, File: logFile})
	require.NoError(t, err)
	l.Info("Generated SWC configuration", "target", "es2018")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Generated SWC configuration")
	assert.Contains(t, string(data), "target=es2018")
}

func TestLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.SetLevel(TraceLevel)

	l.Trace("merging key", "key", "jsc")

	assert.Contains(t, buf.String(), "merging key")
}

func TestDiscard(t *testing.T) {
	l := Discard()

	assert.NotPanics(t, func() { l.Error("dropped") })
	assert.NoError(t, l.Close())
}

func TestPackageLevelFunctions(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.SetLevel(TraceLevel)
	SetDefault(l)

	Trace("trace line")
	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	for _, msg := range []string{"trace line", "debug line", "info line", "warn line", "error line"} {
		assert.Contains(t, out, msg)
	}
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	old := Default()
	SetDefault(nil)

	assert.Same(t, old, Default())
}
