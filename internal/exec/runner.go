// Package exec invokes external completion helpers. It is the only part
// of the compiler that may block on another process, so everything here
// is bounded by a timeout: a helper that hangs costs one deadline, never
// the whole completion request.
package exec

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/clispec/internal/errors"
)

// DefaultTimeout bounds a single helper invocation. Interactive
// completion has to answer within a keystroke's patience.
const DefaultTimeout = 2 * time.Second

// Runner executes a helper script and returns its stdout lines. The
// resolver depends on this interface, not on process spawning, so its
// matching logic is testable with an in-memory fake.
type Runner interface {
	Run(ctx context.Context, script string) ([]string, error)
}

// ShellRunner runs helpers through `sh -c` with a bounded timeout
type ShellRunner struct {
	// Timeout per invocation; DefaultTimeout when zero
	Timeout time.Duration

	// Dir is the working directory for the helper; inherited when empty
	Dir string

	// Env entries appended to the inherited environment
	Env []string
}

// Run executes script and returns its stdout split into lines. A
// timeout or non-zero exit is reported as a recoverable provider error.
func (r *ShellRunner) Run(ctx context.Context, script string) ([]string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := osexec.CommandContext(ctx, "sh", "-c", script)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Stdin = nil

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeProviderTimeout,
				fmt.Sprintf("completion helper exceeded %s: sh -c %q", timeout, script), err)
		}
		var exitErr *osexec.ExitError
		if stderrors.As(err, &exitErr) {
			return nil, errors.Wrap(errors.ErrCodeProviderExit,
				fmt.Sprintf("completion helper exited with %d: sh -c %q", exitErr.ExitCode(), script), err)
		}
		return nil, errors.Wrap(errors.ErrCodeProviderExit,
			fmt.Sprintf("completion helper failed: sh -c %q", script), err)
	}

	return SplitLines(string(out)), nil
}

// SplitLines splits helper output into candidate lines, dropping the
// trailing empty line a newline-terminated stream produces.
func SplitLines(out string) []string {
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
