package exec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clispec/internal/errors"
)

func TestShellRunner(t *testing.T) {
	t.Run("stdout lines", func(t *testing.T) {
		r := &ShellRunner{}
		lines, err := r.Run(context.Background(), "printf 'one\\ntwo\\nthree\\n'")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, lines)
	})

	t.Run("no output", func(t *testing.T) {
		r := &ShellRunner{}
		lines, err := r.Run(context.Background(), "true")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("extra environment", func(t *testing.T) {
		r := &ShellRunner{Env: []string{"COMPLETION_HINT=staging"}}
		lines, err := r.Run(context.Background(), "printf '%s\\n' \"$COMPLETION_HINT\"")
		require.NoError(t, err)
		assert.Equal(t, []string{"staging"}, lines)
	})

	t.Run("working directory", func(t *testing.T) {
		dir := t.TempDir()
		r := &ShellRunner{Dir: dir}
		lines, err := r.Run(context.Background(), "pwd")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], dir)
	})

	t.Run("non-zero exit is a recoverable provider error", func(t *testing.T) {
		r := &ShellRunner{}
		_, err := r.Run(context.Background(), "exit 3")
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeProviderExit, coded.Code)
		assert.False(t, errors.IsFatal(err))
	})

	t.Run("timeout is a recoverable provider error", func(t *testing.T) {
		r := &ShellRunner{Timeout: 50 * time.Millisecond}
		_, err := r.Run(context.Background(), "sleep 5")
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeProviderTimeout, coded.Code)
		assert.False(t, errors.IsFatal(err))
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single newline only", "\n", nil},
		{"terminated stream", "a\nb\n", []string{"a", "b"}},
		{"unterminated stream", "a\nb", []string{"a", "b"}},
		{"interior blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}
