package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clispec/internal/errors"
)

func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		doc, err := Parse("inline", []byte(`
name: tool
help: a tool
flags:
  - long: [verbose]
    short: [v]
commands:
  - name: build
    args:
      - name: target
`))
		require.NoError(t, err)
		assert.Equal(t, "tool", doc.Root.Name)
		require.Len(t, doc.Root.Flags, 1)
		assert.Equal(t, []string{"verbose"}, doc.Root.Flags[0].Long)
		require.Len(t, doc.Root.Commands, 1)
		assert.Equal(t, "build", doc.Root.Commands[0].Name)
		require.Len(t, doc.Root.Commands[0].Args, 1)
		assert.Equal(t, "target", doc.Root.Commands[0].Args[0].Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := Parse("inline", []byte("name: tool\nbogus: true\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(errors.ErrCodeParseSyntax))
	})

	t.Run("malformed yaml reports line", func(t *testing.T) {
		_, err := Parse("inline", []byte("name: tool\nflags:\n  - long: [oops\n"))
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeParseSyntax, coded.Code)
		assert.Contains(t, coded.Message, "line")
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Parse("inline", []byte(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(errors.ErrCodeParseEmpty))
	})

	t.Run("includes rejected inline", func(t *testing.T) {
		_, err := Parse("inline", []byte("name: tool\ninclude: [shared.yaml]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(errors.ErrCodeIncludeRead))
	})
}

func TestParseChoiceForms(t *testing.T) {
	doc, err := Parse("inline", []byte(`
name: tool
args:
  - name: level
    complete:
      choices:
        - debug
        - value: warn
          description: warnings only
          weight: 2
`))
	require.NoError(t, err)

	choices := doc.Root.Args[0].Complete.Choices
	require.Len(t, choices, 2)
	assert.Equal(t, ChoiceDef{Value: "debug"}, choices[0])
	assert.Equal(t, ChoiceDef{Value: "warn", Description: "warnings only", Weight: 2}, choices[1])
}

func TestParseChoiceMappingRequiresValue(t *testing.T) {
	_, err := Parse("inline", []byte(`
name: tool
args:
  - name: level
    complete:
      choices:
        - description: no value here
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choice mapping requires a value")
}

func TestLoad(t *testing.T) {
	t.Run("resolves includes after own declarations", func(t *testing.T) {
		dir := t.TempDir()
		writeSpec(t, dir, "shared.yaml", `
name: shared
flags:
  - long: [color]
commands:
  - name: lint
`)
		root := writeSpec(t, dir, "tool.yaml", `
name: tool
include: [shared.yaml]
flags:
  - long: [verbose]
commands:
  - name: build
`)

		doc, err := Load(root)
		require.NoError(t, err)

		require.Len(t, doc.Root.Flags, 2)
		assert.Equal(t, []string{"verbose"}, doc.Root.Flags[0].Long)
		assert.Equal(t, []string{"color"}, doc.Root.Flags[1].Long)

		require.Len(t, doc.Root.Commands, 2)
		assert.Equal(t, "build", doc.Root.Commands[0].Name)
		assert.Equal(t, "lint", doc.Root.Commands[1].Name)

		assert.Empty(t, doc.Root.Include)
		assert.Len(t, doc.Files, 2)
	})

	t.Run("nested command includes", func(t *testing.T) {
		dir := t.TempDir()
		writeSpec(t, dir, "build-args.yaml", `
name: fragment
args:
  - name: target
`)
		root := writeSpec(t, dir, "tool.yaml", `
name: tool
commands:
  - name: build
    include: [build-args.yaml]
`)

		doc, err := Load(root)
		require.NoError(t, err)
		require.Len(t, doc.Root.Commands[0].Args, 1)
		assert.Equal(t, "target", doc.Root.Commands[0].Args[0].Name)
	})

	t.Run("missing include names the includer", func(t *testing.T) {
		dir := t.TempDir()
		root := writeSpec(t, dir, "tool.yaml", `
name: tool
include: [nope.yaml]
`)

		_, err := Load(root)
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeIncludeNotFound, coded.Code)
		assert.Contains(t, coded.Message, "nope.yaml")
		assert.Contains(t, coded.Message, "tool.yaml")
	})

	t.Run("circular include detected", func(t *testing.T) {
		dir := t.TempDir()
		writeSpec(t, dir, "a.yaml", "name: a\ninclude: [b.yaml]\n")
		writeSpec(t, dir, "b.yaml", "name: b\ninclude: [a.yaml]\n")

		_, err := Load(filepath.Join(dir, "a.yaml"))
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeIncludeCycle, coded.Code)
		assert.Contains(t, coded.Message, "a.yaml")
		assert.Contains(t, coded.Message, "b.yaml")
	})

	t.Run("missing root file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)

		var coded *errors.Error
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, errors.ErrCodeFileNotFound, coded.Code)
	})
}
