// Package generate renders a command model into target-specific
// completion artifacts. The target set is closed: each supported shell
// is one ShellKind variant dispatched through Emit, so every backend is
// exhaustively tested against the same model fixtures.
package generate

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/clispec/internal/errors"
	"github.com/felixgeelhaar/clispec/internal/model"
)

// ShellKind identifies a completion target
type ShellKind int

const (
	// Bash targets bash programmable completion (complete -F)
	Bash ShellKind = iota
	// Zsh targets the zsh completion system (compdef)
	Zsh
	// Fish targets fish's declarative complete commands
	Fish
	// Fig targets the Fig declarative completion-spec runtime
	Fig
)

// Kinds lists every supported target, in emission order
var Kinds = []ShellKind{Bash, Zsh, Fish, Fig}

// String returns the target's name
func (k ShellKind) String() string {
	switch k {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case Fish:
		return "fish"
	case Fig:
		return "fig"
	default:
		return "unknown"
	}
}

// ParseShellKind parses a target name
func ParseShellKind(s string) (ShellKind, error) {
	switch s {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "fig":
		return Fig, nil
	default:
		return 0, errors.NewUnknownShellError(s)
	}
}

// Ext returns the conventional file extension for the target's artifact
func (k ShellKind) Ext() string {
	switch k {
	case Bash:
		return ".bash"
	case Zsh:
		return ".zsh"
	case Fish:
		return ".fish"
	case Fig:
		return ".ts"
	default:
		return ""
	}
}

// Options tunes emission. SpecFile, when set, is baked into the emitted
// script so dynamic providers can delegate back to the runtime word
// completer; without it, exec and filesystem providers degrade to no
// candidates in the static scripts.
type Options struct {
	SpecFile string
}

// Emit renders the model into the target's native completion artifact.
// It is a pure function of the model: no filesystem or network access,
// the caller owns writing the result anywhere.
func Emit(m *model.Model, kind ShellKind, opts Options) (string, error) {
	switch kind {
	case Bash:
		return emitBash(m, opts), nil
	case Zsh:
		return emitZsh(m, opts), nil
	case Fish:
		return emitFish(m, opts), nil
	case Fig:
		return emitFig(m, opts), nil
	default:
		return "", errors.NewUnknownShellError(kind.String())
	}
}

// EmitAll renders every target concurrently against the shared model.
// The model is immutable after build, so the emitters need no
// coordination beyond collecting their outputs.
func EmitAll(ctx context.Context, m *model.Model, opts Options) (map[ShellKind]string, error) {
	var mu sync.Mutex
	out := make(map[ShellKind]string, len(Kinds))

	g, _ := errgroup.WithContext(ctx)
	for _, kind := range Kinds {
		kind := kind
		g.Go(func() error {
			script, err := Emit(m, kind, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			out[kind] = script
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
