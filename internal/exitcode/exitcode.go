package exitcode

import (
	"os"
	"strings"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// SpecError indicates the spec failed to parse or validate
	SpecError = 3

	// IncludeError indicates a missing or circular spec include
	IncludeError = 4

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	errMsg := err.Error()

	// Coded errors carry their category in the message prefix
	if strings.Contains(errMsg, "[INCLUDE-") {
		return IncludeError
	}
	if strings.Contains(errMsg, "[PARSE-") || strings.Contains(errMsg, "[MODEL-") {
		return SpecError
	}

	// Cobra usage errors
	lower := strings.ToLower(errMsg)
	if strings.Contains(lower, "unknown command") || strings.Contains(lower, "unknown flag") {
		return UsageError
	}
	if strings.Contains(lower, "required flag") || strings.Contains(lower, "accepts ") {
		return UsageError
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case SpecError:
		return "Spec parse or validation error"
	case IncludeError:
		return "Spec include error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
