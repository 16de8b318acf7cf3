package errors

import (
	"github.com/cockroachdb/errors"
)

// Exit codes returned by the CLI.
const (
	ExitCodeOK         = 0
	ExitCodeFailure    = 1
	ExitCodeUsage      = 2
	ExitCodeConversion = 3
	ExitCodeOverride   = 4
)

// exitCoder wraps an error and specifies an exit code.
type exitCoder struct {
	cause error
	code  int
}

func (e *exitCoder) Error() string {
	return e.cause.Error()
}

func (e *exitCoder) Cause() error {
	return e.cause
}

func (e *exitCoder) Unwrap() error {
	return e.cause
}

// ExitCode returns the exit code.
func (e *exitCoder) ExitCode() int {
	return e.code
}

// WithExitCode attaches an exit code to an error.
// The exit code can be retrieved later using GetExitCode.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitCoder{
		cause: err,
		code:  code,
	}
}

// GetExitCode extracts the exit code from an error chain.
//
// It checks, in order:
//  1. an exit code attached via WithExitCode;
//  2. conversion and override failures;
//  3. default to 1.
func GetExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	var ec *exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	switch {
	case errors.Is(err, ErrSWCConversion):
		return ExitCodeConversion
	case errors.Is(err, ErrSWCOverride):
		return ExitCodeOverride
	}

	return ExitCodeFailure
}
