package complete

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// fakeRunner is an in-memory exec.Runner for testing exec providers
// without spawning processes.
type fakeRunner struct {
	lines  []string
	err    error
	script string
}

func (f *fakeRunner) Run(_ context.Context, script string) ([]string, error) {
	f.script = script
	return f.lines, f.err
}

func values(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Value
	}
	return out
}

func TestResolveChoices(t *testing.T) {
	r := &Resolver{}
	provider := model.Provider{
		Kind: model.ProviderChoices,
		Choices: []model.Choice{
			{Value: "release", Description: "optimized"},
			{Value: "debug"},
			{Value: "relwithdebinfo"},
		},
	}

	t.Run("prefix filter keeps declared order", func(t *testing.T) {
		cands := r.Resolve(context.Background(), provider, "rel", LineContext{})
		assert.Equal(t, []string{"release", "relwithdebinfo"}, values(cands))
		assert.Equal(t, "optimized", cands[0].Description)
	})

	t.Run("empty partial offers everything", func(t *testing.T) {
		cands := r.Resolve(context.Background(), provider, "", LineContext{})
		assert.Equal(t, []string{"release", "debug", "relwithdebinfo"}, values(cands))
	})

	t.Run("case sensitive by default", func(t *testing.T) {
		cands := r.Resolve(context.Background(), provider, "REL", LineContext{})
		assert.Empty(t, cands)
	})

	t.Run("fold case on request", func(t *testing.T) {
		folded := &Resolver{FoldCase: true}
		cands := folded.Resolve(context.Background(), provider, "REL", LineContext{})
		assert.Equal(t, []string{"release", "relwithdebinfo"}, values(cands))
	})

	t.Run("weight orders, declaration breaks ties", func(t *testing.T) {
		weighted := model.Provider{
			Kind: model.ProviderChoices,
			Choices: []model.Choice{
				{Value: "beta", Weight: 1},
				{Value: "alpha", Weight: 0},
				{Value: "gamma", Weight: 0},
			},
		}
		cands := r.Resolve(context.Background(), weighted, "", LineContext{})
		assert.Equal(t, []string{"alpha", "gamma", "beta"}, values(cands))
	})
}

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "nested.yaml"), nil, 0o644))

	r := &Resolver{Dir: dir}
	sep := string(filepath.Separator)

	t.Run("no pattern lists everything", func(t *testing.T) {
		provider := model.Provider{Kind: model.ProviderFiles}
		cands := r.Resolve(context.Background(), provider, "", LineContext{})
		assert.Equal(t, []string{"README", "main.json", "main.yaml", "sub" + sep}, values(cands))
	})

	t.Run("glob filters files but not directories", func(t *testing.T) {
		provider := model.Provider{Kind: model.ProviderFiles, Pattern: "*.yaml"}
		cands := r.Resolve(context.Background(), provider, "", LineContext{})
		assert.Equal(t, []string{"main.yaml", "sub" + sep}, values(cands))
	})

	t.Run("prefix narrows by basename", func(t *testing.T) {
		provider := model.Provider{Kind: model.ProviderFiles}
		cands := r.Resolve(context.Background(), provider, "main", LineContext{})
		assert.Equal(t, []string{"main.json", "main.yaml"}, values(cands))
	})

	t.Run("trailing separator descends one level", func(t *testing.T) {
		provider := model.Provider{Kind: model.ProviderFiles, Pattern: "*.yaml"}
		cands := r.Resolve(context.Background(), provider, "sub/", LineContext{})
		assert.Equal(t, []string{"sub/nested.yaml"}, values(cands))
	})

	t.Run("partial inside subdirectory", func(t *testing.T) {
		provider := model.Provider{Kind: model.ProviderFiles}
		cands := r.Resolve(context.Background(), provider, "sub/nes", LineContext{})
		assert.Equal(t, []string{"sub/nested.yaml"}, values(cands))
	})

	t.Run("unreadable directory yields empty, not error", func(t *testing.T) {
		broken := &Resolver{Dir: filepath.Join(dir, "does-not-exist")}
		provider := model.Provider{Kind: model.ProviderFiles}
		cands := broken.Resolve(context.Background(), provider, "", LineContext{})
		assert.Empty(t, cands)
	})
}

func TestResolveExec(t *testing.T) {
	t.Run("helper lines become candidates", func(t *testing.T) {
		runner := &fakeRunner{lines: []string{"main", "develop\tdefault branch", "feature/x"}}
		r := &Resolver{Runner: runner}
		provider := model.Provider{Kind: model.ProviderExec, Run: "git branch --format='%(refname:short)'"}

		cands := r.Resolve(context.Background(), provider, "", LineContext{})
		assert.Equal(t, []string{"main", "develop", "feature/x"}, values(cands))
		assert.Equal(t, "default branch", cands[1].Description)
	})

	t.Run("helper output filtered by partial", func(t *testing.T) {
		runner := &fakeRunner{lines: []string{"main", "master", "develop"}}
		r := &Resolver{Runner: runner}
		provider := model.Provider{Kind: model.ProviderExec, Run: "list-branches"}

		cands := r.Resolve(context.Background(), provider, "ma", LineContext{})
		assert.Equal(t, []string{"main", "master"}, values(cands))
	})

	t.Run("template renders against the command line", func(t *testing.T) {
		runner := &fakeRunner{}
		r := &Resolver{Runner: runner}
		provider := model.Provider{Kind: model.ProviderExec, Run: "helper --prev {{index .Words .Prev}}"}

		line := LineContext{Words: []string{"deploy", "staging", ""}, Current: 2, Prev: 1}
		r.Resolve(context.Background(), provider, "", line)
		assert.Equal(t, "helper --prev staging", runner.script)
	})

	t.Run("helper failure yields empty, not error", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 1")}
		r := &Resolver{Runner: runner}
		provider := model.Provider{Kind: model.ProviderExec, Run: "broken-helper"}

		cands := r.Resolve(context.Background(), provider, "", LineContext{})
		assert.Empty(t, cands)
	})
}

func TestResolveNone(t *testing.T) {
	r := &Resolver{}
	cands := r.Resolve(context.Background(), model.Provider{}, "any", LineContext{})
	assert.Nil(t, cands)
}
