package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/tswig/cmd"
	errUtils "github.com/cloudposse/tswig/errors"
	log "github.com/cloudposse/tswig/pkg/logger"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		cmd.Cleanup()
		// Exit with the POSIX code for the signal (128 + signal number).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the CLI and returns an exit code. Keeping it apart from main
// lets deferred cleanup run before the process exits.
func run() int {
	defer cmd.Cleanup()

	err := cmd.Execute()
	if err != nil {
		formatted := errUtils.Format(err, errUtils.FormatterConfig{
			Verbose:       hasVerboseFlag(os.Args),
			Color:         "auto",
			MaxLineLength: errUtils.DefaultMaxLineLength,
		})
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}

// hasVerboseFlag reports whether the command line or TSWIG_VERBOSE asks for verbose output.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args[1:] {
		if arg == "--verbose" || arg == "-v" || arg == "--verbose=true" {
			return true
		}
	}
	v := os.Getenv("TSWIG_VERBOSE")
	return v == "1" || v == "true"
}
