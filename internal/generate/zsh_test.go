package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitZsh(t *testing.T) {
	m := buildModel(t, fixtureSpec)

	script, err := Emit(m, Zsh, Options{})
	require.NoError(t, err)

	t.Run("compdef header", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(script, "#compdef tool\n"))
	})

	t.Run("one function per node", func(t *testing.T) {
		assert.Contains(t, script, "__tool_znode() {")
		assert.Contains(t, script, "__tool_build_znode() {")
		assert.Contains(t, script, "__tool_run_znode() {")
	})

	t.Run("root walk starts past the command word", func(t *testing.T) {
		assert.Contains(t, script, "__tool_znode 2\n")
		assert.Contains(t, script, "while (( idx < CURRENT ))")
	})

	t.Run("candidates carry descriptions through _describe", func(t *testing.T) {
		assert.Contains(t, script, "_describe -t commands 'command' _cands")
		assert.Contains(t, script, shSingle("build:compile the project"))
		assert.Contains(t, script, shSingle("debug:with symbols"))
	})

	t.Run("hidden commands not offered", func(t *testing.T) {
		assert.Contains(t, script, "_cands=('build:compile the project' 'b:compile the project' 'run')")
	})

	t.Run("glob files provider uses _files -g", func(t *testing.T) {
		assert.Contains(t, script, "_files -g '*.tar'")
	})

	t.Run("flag entries include negations", func(t *testing.T) {
		assert.Contains(t, script, shSingle("--no-color:colored output"))
	})
}

func TestEmitZshDelegation(t *testing.T) {
	m := buildModel(t, fixtureSpec)

	script, err := Emit(m, Zsh, Options{SpecFile: "/etc/tool/tool.yaml"})
	require.NoError(t, err)

	assert.Contains(t, script, "__tool_delegate() {")
	assert.Contains(t, script, "clispec complete-word --shell zsh --file '/etc/tool/tool.yaml' --cword $((CURRENT-1))")
}

func TestEmitZshColonEscaping(t *testing.T) {
	m := buildModel(t, `
name: tool
args:
  - name: ref
    complete:
      choices:
        - value: "origin:main"
          description: "remote: tracking"
`)

	script, err := Emit(m, Zsh, Options{})
	require.NoError(t, err)
	assert.Contains(t, script, shSingle(`origin\:main:remote\: tracking`))
}
