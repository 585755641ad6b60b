package model

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/felixgeelhaar/clispec/internal/errors"
	"github.com/felixgeelhaar/clispec/internal/spec"
)

// Build lowers a loaded spec document into a validated Model. All
// validation runs eagerly: a single invocation reports every problem in
// the spec instead of failing lazily mid-emission. The returned model is
// never partial; any validation error means no model.
func Build(doc *spec.Document) (*Model, error) {
	b := &builder{m: &Model{}}
	b.m.Root = b.lower(&doc.Root, -1, nil, nil)
	if len(b.errs) > 0 {
		return nil, stderrors.Join(b.errs...)
	}
	return b.m, nil
}

type builder struct {
	m    *Model
	errs []error
}

// lower converts one raw command node and its subtree into arena nodes,
// returning the new node's index. inherited carries the global flags in
// force at this depth.
func (b *builder) lower(def *spec.CommandDef, parent int, parentPath []string, inherited []Flag) int {
	name := strings.TrimSpace(def.Name)
	path := append(append([]string{}, parentPath...), name)
	if name == "" {
		b.errs = append(b.errs, errors.New(errors.ErrCodeModelEmptyName, "command name cannot be empty").WithPath(parentPath...))
	}

	idx := len(b.m.Commands)
	b.m.Commands = append(b.m.Commands, Command{
		Name:        name,
		Aliases:     def.Aliases,
		Parent:      parent,
		Help:        def.Help,
		Description: def.Description,
		Hidden:      def.Hidden,
		BeforeHook:  def.BeforeHook,
		AfterHook:   def.AfterHook,
		Path:        path,
	})

	b.m.Commands[idx].Flags = b.buildFlags(def.Flags, inherited, path)
	b.m.Commands[idx].Args = b.buildArgs(def.Args, path)

	// Globals visible to children: every effective flag marked global,
	// re-tagged as inherited. Copy-down, not a live reference.
	var childInherited []Flag
	for _, f := range b.m.Commands[idx].Flags {
		if f.Global {
			f.Inherited = true
			childInherited = append(childInherited, f)
		}
	}

	for i := range def.Commands {
		child := b.lower(&def.Commands[i], idx, path, childInherited)
		b.m.Commands[idx].Children = append(b.m.Commands[idx].Children, child)
	}
	return idx
}

// buildFlags merges a node's own flag declarations over the inherited
// globals. A redeclared trigger replaces the inherited definition for
// this node and, through the copy-down, its descendants. Duplicate
// triggers within the resulting effective set are a validation error.
func (b *builder) buildFlags(defs []spec.FlagDef, inherited []Flag, path []string) []Flag {
	effective := append([]Flag{}, inherited...)

	for i := range defs {
		flag, err := b.buildFlag(&defs[i], path)
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}

		replaced := false
		for j := range effective {
			if effective[j].Inherited && sharesTrigger(&effective[j], &flag) {
				effective[j] = flag
				replaced = true
				break
			}
		}
		if !replaced {
			effective = append(effective, flag)
		}
	}

	seen := map[string]bool{}
	for i := range effective {
		for _, t := range effective[i].Triggers() {
			if seen[t] {
				b.errs = append(b.errs, errors.NewDuplicateFlagError(t, path))
			}
			seen[t] = true
		}
	}
	return effective
}

// sharesTrigger reports whether two flags collide on any trigger form
func sharesTrigger(a, b *Flag) bool {
	set := map[string]bool{}
	for _, t := range a.Triggers() {
		set[t] = true
	}
	for _, t := range b.Triggers() {
		if set[t] {
			return true
		}
	}
	return false
}

func (b *builder) buildFlag(def *spec.FlagDef, path []string) (Flag, error) {
	flag := Flag{
		Short:    def.Short,
		Long:     def.Long,
		Negates:  def.Negates,
		Required: def.Required,
		Default:  def.Default,
		Help:     def.Help,
		Global:   def.Global,
		Hidden:   def.Hidden,
	}

	if len(def.Short) == 0 && len(def.Long) == 0 {
		return flag, errors.New(errors.ErrCodeModelEmptyName, "flag needs at least one short or long trigger").WithPath(path...)
	}

	switch def.Arity {
	case "", "none":
		flag.Arity = FlagNone
	case "one":
		flag.Arity = FlagOne
	case "many":
		flag.Arity = FlagMany
	default:
		return flag, errors.NewArityError(fmt.Sprintf("unknown flag arity %q (want none, one or many)", def.Arity), path)
	}

	if def.Complete != nil && flag.Arity == FlagNone {
		return flag, errors.NewCompletionSpecError("presence-only flag cannot have a completion provider", path)
	}

	provider, err := b.buildProvider(def.Complete, path)
	if err != nil {
		return flag, err
	}
	flag.Provider = provider
	return flag, nil
}

// buildArgs lowers the positional arguments, enforcing the arity
// invariants: at most one variadic and it must be last, and no required
// argument after an optional one.
func (b *builder) buildArgs(defs []spec.ArgDef, path []string) []Arg {
	args := make([]Arg, 0, len(defs))
	sawOptional := false

	for i := range defs {
		def := &defs[i]
		arg := Arg{Name: def.Name, Default: def.Default, Help: def.Help}
		if strings.TrimSpace(def.Name) == "" {
			b.errs = append(b.errs, errors.New(errors.ErrCodeModelEmptyName, "argument name cannot be empty").WithPath(path...))
		}

		switch def.Arity {
		case "", "one":
			arg.Arity = ArgOne
		case "optional":
			arg.Arity = ArgOptional
		case "variadic":
			arg.Arity = ArgVariadic
		default:
			b.errs = append(b.errs, errors.NewArityError(fmt.Sprintf("unknown argument arity %q (want one, optional or variadic)", def.Arity), path))
		}

		if arg.Arity == ArgVariadic && i != len(defs)-1 {
			b.errs = append(b.errs, errors.NewArityError(fmt.Sprintf("variadic argument %q must be last", def.Name), path))
		}
		if arg.Arity == ArgVariadic && i > 0 && args[i-1].Arity == ArgVariadic {
			b.errs = append(b.errs, errors.NewArityError("a command may have at most one variadic argument", path))
		}
		if arg.Arity == ArgOne && sawOptional {
			b.errs = append(b.errs, errors.NewArityError(fmt.Sprintf("required argument %q cannot follow an optional one", def.Name), path))
		}
		if arg.Arity == ArgOptional {
			sawOptional = true
		}

		provider, err := b.buildProvider(def.Complete, path)
		if err != nil {
			b.errs = append(b.errs, err)
		}
		arg.Provider = provider
		args = append(args, arg)
	}
	return args
}

func (b *builder) buildProvider(def *spec.CompleteDef, path []string) (Provider, error) {
	if def == nil {
		return Provider{Kind: ProviderNone}, nil
	}

	set := 0
	if len(def.Choices) > 0 {
		set++
	}
	if def.Files != "" {
		set++
	}
	if def.Run != "" {
		set++
	}
	if set != 1 {
		return Provider{}, errors.NewCompletionSpecError("exactly one of choices, files or run must be set", path)
	}

	switch {
	case len(def.Choices) > 0:
		choices := make([]Choice, len(def.Choices))
		for i, c := range def.Choices {
			choices[i] = Choice{Value: c.Value, Description: c.Description, Weight: c.Weight}
		}
		return Provider{Kind: ProviderChoices, Choices: choices}, nil
	case def.Files != "":
		pattern := def.Files
		if pattern == "*" {
			pattern = ""
		}
		if pattern != "" {
			if _, err := filepath.Match(pattern, "probe"); err != nil {
				return Provider{}, errors.NewCompletionSpecError(fmt.Sprintf("bad file glob %q: %v", def.Files, err), path)
			}
		}
		return Provider{Kind: ProviderFiles, Pattern: pattern}, nil
	default:
		// The helper command is a template rendered against the live
		// command line; a template that does not parse is a build-time
		// error, not a completion-time one.
		if _, err := template.New("run").Parse(def.Run); err != nil {
			return Provider{}, errors.NewCompletionSpecError(fmt.Sprintf("bad run template %q: %v", def.Run, err), path)
		}
		return Provider{Kind: ProviderExec, Run: def.Run}, nil
	}
}
