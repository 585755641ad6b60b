package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	m := buildModel(t, toolSpec)

	t.Run("root help", func(t *testing.T) {
		out, err := Help(m, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "tool")
		assert.Contains(t, out, "a demo tool")
		assert.Contains(t, out, "Usage:")
		assert.Contains(t, out, "tool [flags] <command>")
		assert.Contains(t, out, "build")
		assert.Contains(t, out, "alias: b")
		assert.NotContains(t, out, "secret")
	})

	t.Run("subcommand help by path", func(t *testing.T) {
		out, err := Help(m, []string{"build"})
		require.NoError(t, err)
		assert.Contains(t, out, "tool build")
		assert.Contains(t, out, "<package>")
		assert.Contains(t, out, "package to build")
		assert.Contains(t, out, "--target")
		// Inherited globals are shown, marked
		assert.Contains(t, out, "--verbose")
		assert.Contains(t, out, "(global)")
	})

	t.Run("alias resolves", func(t *testing.T) {
		out, err := Help(m, []string{"b"})
		require.NoError(t, err)
		assert.Contains(t, out, "tool build")
	})

	t.Run("unknown path errors", func(t *testing.T) {
		_, err := Help(m, []string{"nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown command "nope"`)
	})
}
