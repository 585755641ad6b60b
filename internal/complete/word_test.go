package complete

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clispec/internal/model"
	"github.com/felixgeelhaar/clispec/internal/spec"
)

func buildModel(t *testing.T, src string) *model.Model {
	t.Helper()
	doc, err := spec.Parse("test", []byte(src))
	require.NoError(t, err)
	m, err := model.Build(doc)
	require.NoError(t, err)
	return m
}

const toolSpec = `
name: tool
flags:
  - long: [verbose]
    short: [v]
    global: true
  - long: [color]
    negates: [no-color]
commands:
  - name: build
    help: compile the project
    aliases: [b]
    flags:
      - long: [target]
        short: [t]
        arity: one
        complete:
          choices: [release, debug]
      - long: [force]
    args:
      - name: package
        complete:
          choices: [core, cli, docs]
  - name: start
    help: start the service
  - name: stop
    help: stop the service
  - name: run
    args:
      - name: script
        complete:
          choices: [setup, teardown]
      - name: extra
        arity: variadic
        complete:
          choices: [one, two]
`

func complete(t *testing.T, m *model.Model, words []string, cword int) []Candidate {
	t.Helper()
	r := &Resolver{}
	return r.Word(context.Background(), m, Request{Words: words, CWord: cword})
}

func TestWordFlagValue(t *testing.T) {
	m := buildModel(t, toolSpec)

	// tool build --target re<TAB>
	cands := complete(t, m, []string{"build", "--target", "re"}, 2)
	assert.Equal(t, []string{"release"}, values(cands))

	// Short form awaits the same value
	cands = complete(t, m, []string{"build", "-t", ""}, 2)
	assert.Equal(t, []string{"release", "debug"}, values(cands))

	// After the value is consumed, back to positionals
	cands = complete(t, m, []string{"build", "--target", "release", ""}, 3)
	assert.Equal(t, []string{"core", "cli", "docs"}, values(cands))
}

func TestWordInlineFlagValue(t *testing.T) {
	m := buildModel(t, toolSpec)

	// --target=release carries its value; the next word is positional
	cands := complete(t, m, []string{"build", "--target=release", "c"}, 2)
	assert.Equal(t, []string{"core", "cli"}, values(cands))
}

func TestWordSubcommands(t *testing.T) {
	m := buildModel(t, toolSpec)

	t.Run("empty token offers all children in declaration order", func(t *testing.T) {
		cands := complete(t, m, []string{""}, 0)
		assert.Equal(t, []string{"build", "b", "start", "stop", "run"}, values(cands))
		assert.Equal(t, "compile the project", cands[0].Description)
	})

	t.Run("ambiguous prefix yields every match", func(t *testing.T) {
		cands := complete(t, m, []string{"s"}, 0)
		assert.Equal(t, []string{"start", "stop"}, values(cands))
	})

	t.Run("cursor past the last token", func(t *testing.T) {
		cands := complete(t, m, []string{}, 0)
		assert.Equal(t, []string{"build", "b", "start", "stop", "run"}, values(cands))
	})

	t.Run("alias descends like the name", func(t *testing.T) {
		cands := complete(t, m, []string{"b", ""}, 1)
		assert.Equal(t, []string{"core", "cli", "docs"}, values(cands))
	})
}

func TestWordFlags(t *testing.T) {
	m := buildModel(t, toolSpec)

	t.Run("lone dash offers shorts then longs", func(t *testing.T) {
		cands := complete(t, m, []string{"-"}, 0)
		assert.Equal(t, []string{"-v", "--color", "--no-color", "--verbose"}, values(cands))
	})

	t.Run("double dash restricts to longs", func(t *testing.T) {
		cands := complete(t, m, []string{"build", "--"}, 1)
		assert.Equal(t, []string{"--force", "--target", "--verbose"}, values(cands))
	})

	t.Run("prefix narrows flags", func(t *testing.T) {
		cands := complete(t, m, []string{"build", "--f"}, 1)
		assert.Equal(t, []string{"--force"}, values(cands))
	})

	t.Run("negation forms complete", func(t *testing.T) {
		cands := complete(t, m, []string{"--no"}, 0)
		assert.Equal(t, []string{"--no-color"}, values(cands))
	})

	t.Run("inherited global visible on child", func(t *testing.T) {
		cands := complete(t, m, []string{"build", "--v"}, 1)
		assert.Equal(t, []string{"--verbose"}, values(cands))
	})
}

func TestWordPositionals(t *testing.T) {
	m := buildModel(t, toolSpec)

	t.Run("first positional", func(t *testing.T) {
		cands := complete(t, m, []string{"run", ""}, 1)
		assert.Equal(t, []string{"setup", "teardown"}, values(cands))
	})

	t.Run("variadic absorbs the rest", func(t *testing.T) {
		cands := complete(t, m, []string{"run", "setup", ""}, 2)
		assert.Equal(t, []string{"one", "two"}, values(cands))

		cands = complete(t, m, []string{"run", "setup", "one", "one", ""}, 4)
		assert.Equal(t, []string{"one", "two"}, values(cands))
	})

	t.Run("exhausted non-variadic yields nothing", func(t *testing.T) {
		cands := complete(t, m, []string{"build", "core", ""}, 2)
		assert.Empty(t, cands)
	})

	t.Run("presence flags do not consume positional slots", func(t *testing.T) {
		cands := complete(t, m, []string{"build", "--force", "-v", ""}, 3)
		assert.Equal(t, []string{"core", "cli", "docs"}, values(cands))
	})
}

func TestWordUnknownTokenStopsDescent(t *testing.T) {
	m := buildModel(t, toolSpec)

	// "bogus" is a positional of the root, so "build" afterwards is no
	// longer treated as a subcommand and the root has no args to offer.
	cands := complete(t, m, []string{"bogus", ""}, 1)
	assert.Empty(t, cands)

	// Flags still complete after an unknown positional
	cands = complete(t, m, []string{"bogus", "--v"}, 1)
	assert.Equal(t, []string{"--verbose"}, values(cands))
}

func TestWordHiddenChildrenOmitted(t *testing.T) {
	m := buildModel(t, `
name: tool
commands:
  - name: visible
  - name: secret
    hidden: true
`)

	cands := complete(t, m, []string{""}, 0)
	assert.Equal(t, []string{"visible"}, values(cands))

	// Hidden commands still complete beneath themselves when typed out
	cands = complete(t, m, []string{"secret", "--"}, 1)
	assert.Empty(t, cands)
}

func TestWordCWordClamped(t *testing.T) {
	m := buildModel(t, toolSpec)

	cands := complete(t, m, []string{"build"}, 99)
	assert.Equal(t, []string{"core", "cli", "docs"}, values(cands))

	cands = complete(t, m, []string{"build"}, -5)
	assert.Equal(t, []string{"core", "cli", "docs"}, values(cands))
}
