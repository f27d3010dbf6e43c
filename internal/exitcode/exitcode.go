// Package exitcode maps console failures onto stable process exit codes so
// scripts wrapping adctl can branch on what went wrong.
package exitcode

import (
	"os"

	"github.com/realestatead/adctl/internal/api"
)

const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a connectivity issue
	NetworkError = 4

	// ValidationError indicates the server rejected submitted fields
	ValidationError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the process with the given code.
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with a code derived from the error.
func ExitWithError(err error) {
	Exit(Determine(err))
}

// Determine returns the exit code for an error. Normalized API errors map by
// kind; everything else is a general error.
func Determine(err error) int {
	if err == nil {
		return Success
	}

	apiErr, ok := api.AsError(err)
	if !ok {
		return GeneralError
	}

	switch apiErr.Kind {
	case api.KindUnauthenticated:
		return AuthError
	case api.KindTransport:
		return NetworkError
	case api.KindValidation:
		return ValidationError
	default:
		return GeneralError
	}
}
