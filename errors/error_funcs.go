package errors

import (
	"os"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// PrintError writes the formatted error to stderr.
func PrintError(err error, config FormatterConfig) {
	if err == nil {
		return
	}
	_, _ = os.Stderr.WriteString(Format(err, config) + newline)
}

// Exit exits the program with the specified exit code.
func Exit(exitCode int) {
	OsExit(exitCode)
}
