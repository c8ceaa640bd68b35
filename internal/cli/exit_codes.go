package cli

import "github.com/slashcmd/slashcmd/internal/errors"

// Exit codes for the slashcmd CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic failure
	ExitFailure = 1

	// ExitValidation indicates invalid input (query, namespace, flags)
	ExitValidation = 2

	// ExitNotFound indicates the requested command does not exist
	ExitNotFound = 3

	// ExitFetchFailed indicates the remote repository was unreachable
	ExitFetchFailed = 4
)

// exitCodeFor maps an error kind to the process exit code.
func exitCodeFor(kind errors.Kind) int {
	switch kind {
	case errors.Validation:
		return ExitValidation
	case errors.NotFound:
		return ExitNotFound
	case errors.Fetch:
		return ExitFetchFailed
	default:
		return ExitFailure
	}
}
