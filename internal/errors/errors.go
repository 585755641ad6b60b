package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Parse errors (PARSE-001 to PARSE-099): malformed spec syntax, fatal
	ErrCodeParseSyntax ErrorCode = "PARSE-001"
	ErrCodeParseShape  ErrorCode = "PARSE-002"
	ErrCodeParseEmpty  ErrorCode = "PARSE-003"

	// Include errors (INCLUDE-001 to INCLUDE-099): missing or circular includes, fatal
	ErrCodeIncludeNotFound ErrorCode = "INCLUDE-001"
	ErrCodeIncludeCycle    ErrorCode = "INCLUDE-002"
	ErrCodeIncludeRead     ErrorCode = "INCLUDE-003"

	// Model errors (MODEL-001 to MODEL-099): validation failures, fatal
	ErrCodeModelDuplicateFlag  ErrorCode = "MODEL-001"
	ErrCodeModelArity          ErrorCode = "MODEL-002"
	ErrCodeModelCompletionSpec ErrorCode = "MODEL-003"
	ErrCodeModelEmptyName      ErrorCode = "MODEL-004"

	// Provider errors (PROVIDER-001 to PROVIDER-099): recoverable, contained per provider
	ErrCodeProviderTimeout    ErrorCode = "PROVIDER-001"
	ErrCodeProviderExit       ErrorCode = "PROVIDER-002"
	ErrCodeProviderUnreadable ErrorCode = "PROVIDER-003"
	ErrCodeProviderTemplate   ErrorCode = "PROVIDER-004"

	// Generation errors (GEN-001 to GEN-099)
	ErrCodeGenUnknownShell ErrorCode = "GEN-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// Error is a coded error carrying the offending command path, recovery
// suggestions, and an optional wrapped cause.
type Error struct {
	Code        ErrorCode
	Message     string
	CommandPath []string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.CommandPath) > 0 {
		b.WriteString(fmt.Sprintf(" (at %q)", strings.Join(e.CommandPath, " ")))
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new coded Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new coded Error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithPath attaches the offending command path (sequence of command names
// from the root) to the error
func (e *Error) WithPath(path ...string) *Error {
	e.CommandPath = append(e.CommandPath, path...)
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *Error) WithDocs(url string) *Error {
	e.DocsURL = url
	return e
}

// IsFatal reports whether an error must abort the whole invocation.
// Provider errors are recoverable and yield an empty candidate subset;
// everything else in the taxonomy terminates the run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*Error)
	if !ok {
		return true
	}
	return !strings.HasPrefix(string(e.Code), "PROVIDER-")
}

// Common error constructors for frequently used errors

// NewParseError creates a spec syntax error with file location
func NewParseError(file string, line int, details string) *Error {
	loc := file
	if line > 0 {
		loc = fmt.Sprintf("%s:%d", file, line)
	}
	return New(ErrCodeParseSyntax, fmt.Sprintf("malformed spec at %s: %s", loc, details)).
		WithSuggestion("Run 'clispec validate -f <file>' to see all problems at once").
		WithDocs("https://github.com/felixgeelhaar/clispec#spec-format")
}

// NewIncludeNotFoundError creates a missing-include error
func NewIncludeNotFoundError(path, from string) *Error {
	return New(ErrCodeIncludeNotFound, fmt.Sprintf("included spec not found: %s (included from %s)", path, from)).
		WithSuggestion("Include paths are resolved relative to the including document").
		WithSuggestion("Check if the file path is correct")
}

// NewIncludeCycleError creates a circular-include error
func NewIncludeCycleError(cycle []string) *Error {
	return New(ErrCodeIncludeCycle, fmt.Sprintf("circular include: %s", strings.Join(cycle, " -> "))).
		WithSuggestion("Remove the include directive that closes the cycle")
}

// NewDuplicateFlagError creates a duplicate flag trigger error
func NewDuplicateFlagError(trigger string, path []string) *Error {
	return New(ErrCodeModelDuplicateFlag, fmt.Sprintf("duplicate flag trigger %q", trigger)).
		WithPath(path...).
		WithSuggestion("Flag triggers must be unique within a command, including inherited global flags").
		WithSuggestion("Redeclare the inherited flag on this command to override it instead")
}

// NewArityError creates a positional-argument arity error
func NewArityError(details string, path []string) *Error {
	return New(ErrCodeModelArity, details).
		WithPath(path...).
		WithSuggestion("A command may have at most one variadic argument and it must be last")
}

// NewCompletionSpecError creates a malformed completion-provider error
func NewCompletionSpecError(details string, path []string) *Error {
	return New(ErrCodeModelCompletionSpec, fmt.Sprintf("invalid completion provider: %s", details)).
		WithPath(path...).
		WithSuggestion("A completion block takes exactly one of: choices, files, run")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *Error {
	return New(ErrCodeFileNotFound, fmt.Sprintf("spec file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewUnknownShellError creates an unsupported-target error
func NewUnknownShellError(shell string) *Error {
	return New(ErrCodeGenUnknownShell, fmt.Sprintf("unknown completion target: %s", shell)).
		WithSuggestion("Supported targets: bash, zsh, fish, fig")
}
