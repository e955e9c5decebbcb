package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the changegov CLI.
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a message or version constraint violation
	ExitValidationFailed = 1

	// ExitAmbiguous indicates the change description could not be classified
	ExitAmbiguous = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitLedgerUnavailable indicates the changelog ledger could not be accessed
	ExitLedgerUnavailable = 4
)

// ExitError carries an exit code up to Execute without re-printing the
// message (the command already reported it).
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode extracts the process exit code from an Execute error.
// Plain errors map to ExitValidationFailed.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitValidationFailed
}
