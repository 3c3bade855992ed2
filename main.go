package main

import (
	"github.com/cloudposse/stopwatch/cmd"
	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/logger"
)

func main() {
	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the CLI and returns the process exit code.
// The error itself has already been printed by the command's error handler.
func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	exitCode := errUtils.GetExitCode(err)
	logger.Debug("Exiting with exit code", "code", exitCode)
	return exitCode
}
