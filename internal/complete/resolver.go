package complete

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/felixgeelhaar/clispec/internal/exec"
	"github.com/felixgeelhaar/clispec/internal/log"
	"github.com/felixgeelhaar/clispec/internal/model"
)

// Resolver evaluates completion providers against a partial token.
// Provider failures are contained: a broken helper or unreadable
// directory yields an empty candidate subset and a warning, never an
// error to the caller. An interactive completion must not error visibly
// mid-keystroke.
type Resolver struct {
	// Runner executes exec providers; a ShellRunner in production, a
	// fake in tests.
	Runner exec.Runner

	// FoldCase makes prefix matching case-insensitive. Off by default;
	// candidate filtering and flag matching are case-sensitive.
	FoldCase bool

	// Dir is the base for relative filesystem completion; the process
	// working directory when empty.
	Dir string

	Logger *log.Logger
}

// NewResolver creates a Resolver with the default shell runner
func NewResolver() *Resolver {
	return &Resolver{
		Runner: &exec.ShellRunner{},
		Logger: log.DefaultLogger(),
	}
}

// LineContext is the command-line context an exec provider's template
// renders against: the full word list, the index of the word being
// completed, and the index before it.
type LineContext struct {
	Words   []string
	Current int
	Prev    int
}

// Resolve computes the candidates a provider offers for partial. The
// returned order is the provider's declared order, stable-sorted by
// weight.
func (r *Resolver) Resolve(ctx context.Context, provider model.Provider, partial string, line LineContext) []Candidate {
	switch provider.Kind {
	case model.ProviderChoices:
		return r.resolveChoices(provider.Choices, partial)
	case model.ProviderFiles:
		return r.resolveFiles(provider.Pattern, partial)
	case model.ProviderExec:
		return r.resolveExec(ctx, provider.Run, partial, line)
	default:
		return nil
	}
}

func (r *Resolver) resolveChoices(choices []model.Choice, partial string) []Candidate {
	var cands []Candidate
	for _, c := range choices {
		if !hasPrefix(c.Value, partial, r.FoldCase) {
			continue
		}
		cands = append(cands, Candidate{Value: c.Value, Description: c.Description, Weight: c.Weight})
	}
	sortByWeight(cands)
	return cands
}

// resolveFiles lists one directory level: the directory component of the
// partial token, filtered by basename prefix and the configured glob.
// Directories are always offered (with a trailing separator) so the user
// can keep descending; no recursion happens here, whatever the glob.
func (r *Resolver) resolveFiles(pattern, partial string) []Candidate {
	base := r.Dir
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}

	dirPart, prefix := filepath.Split(partial)
	if strings.HasSuffix(partial, "/") {
		dirPart, prefix = partial, ""
	}

	dir := dirPart
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(base, dirPart)
	}
	if dirPart == "" {
		dir = base
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger().Warn("filesystem completion failed", "dir", dir, "error", err)
		return nil
	}

	var cands []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !hasPrefix(name, prefix, r.FoldCase) {
			continue
		}
		if entry.IsDir() {
			cands = append(cands, Candidate{Value: dirPart + name + string(filepath.Separator)})
			continue
		}
		if pattern != "" {
			ok, err := filepath.Match(pattern, name)
			if err != nil || !ok {
				continue
			}
		}
		cands = append(cands, Candidate{Value: dirPart + name})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Value < cands[j].Value })
	return cands
}

// resolveExec renders the helper template against the live command line
// and runs it through the bounded Runner. Helper output is one candidate
// per line; a tab separates an optional description.
func (r *Resolver) resolveExec(ctx context.Context, run, partial string, line LineContext) []Candidate {
	tmpl, err := template.New("run").Parse(run)
	if err != nil {
		// Unreachable for built models; raw providers can still get here.
		r.logger().Warn("bad helper template", "template", run, "error", err)
		return nil
	}

	var script strings.Builder
	if err := tmpl.Execute(&script, line); err != nil {
		r.logger().Warn("helper template failed", "template", run, "error", err)
		return nil
	}

	lines, err := r.Runner.Run(ctx, script.String())
	if err != nil {
		r.logger().WithError(err).Warn("completion helper failed")
		return nil
	}

	var cands []Candidate
	for _, l := range lines {
		value, desc, _ := strings.Cut(l, "\t")
		if !hasPrefix(value, partial, r.FoldCase) {
			continue
		}
		cands = append(cands, Candidate{Value: value, Description: desc})
	}
	return cands
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.DefaultLogger()
}
