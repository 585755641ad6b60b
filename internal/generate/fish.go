package generate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// emitFish renders fish's declarative completion grammar: one condition
// function per command node plus `complete -c` lines guarded by it.
// The condition compares the non-flag tokens typed so far against the
// node's path, which is how hand-written fish completions convention-
// ally detect subcommand position.
func emitFish(m *model.Model, opts Options) string {
	e := &fishEmitter{m: m, opts: opts, bin: m.RootCommand().Name}
	return e.emit()
}

type fishEmitter struct {
	m    *model.Model
	opts Options
	bin  string
	b    strings.Builder
}

func (e *fishEmitter) emit() string {
	fmt.Fprintf(&e.b, "# fish completion for %s -- generated by clispec, do not edit\n\n", e.bin)

	// __<bin>_cmdline emits the positional tokens typed so far, flags
	// and their inline values stripped, program name dropped.
	fmt.Fprintf(&e.b, "function __%s_cmdline\n", e.fn())
	fmt.Fprintf(&e.b, "    set -l toks (commandline -opc)\n")
	fmt.Fprintf(&e.b, "    set -e toks[1]\n")
	fmt.Fprintf(&e.b, "    string match -rv -- '^-' $toks\n")
	fmt.Fprintf(&e.b, "end\n\n")

	e.m.Walk(func(cmd *model.Command) { e.nodeCondition(cmd) })
	e.m.Walk(func(cmd *model.Command) { e.nodeCompletions(cmd) })

	return e.b.String()
}

// nodeCondition writes the predicate that holds while the cursor is
// inside this node: the typed subcommand path matches the node's path
// exactly (with aliases accepted at every level).
func (e *fishEmitter) nodeCondition(cmd *model.Command) {
	fmt.Fprintf(&e.b, "function %s\n", e.condFn(cmd))
	fmt.Fprintf(&e.b, "    set -l toks (__%s_cmdline)\n", e.fn())

	depth := len(cmd.Path) - 1 // path includes the binary itself
	if depth > 0 {
		fmt.Fprintf(&e.b, "    test (count $toks) -ge %d; or return 1\n", depth)
	}

	for level := 1; level < len(cmd.Path); level++ {
		next := e.childAtPath(cmd.Path[:level+1])
		pats := append([]string{next.Name}, next.Aliases...)
		fmt.Fprintf(&e.b, "    contains -- $toks[%d] %s; or return 1\n", level, fishWords(pats))
	}

	if len(cmd.Children) > 0 {
		// No deeper subcommand may already be typed.
		var names []string
		for _, idx := range cmd.Children {
			child := e.m.At(idx)
			names = append(names, child.Name)
			names = append(names, child.Aliases...)
		}
		fmt.Fprintf(&e.b, "    if test (count $toks) -gt %d\n", depth)
		fmt.Fprintf(&e.b, "        contains -- $toks[%d] %s; and return 1\n", depth+1, fishWords(names))
		fmt.Fprintf(&e.b, "    end\n")
	}
	fmt.Fprintf(&e.b, "    return 0\nend\n\n")
}

func (e *fishEmitter) childAtPath(path []string) *model.Command {
	node := e.m.RootCommand()
	for _, name := range path[1:] {
		for _, idx := range node.Children {
			if e.m.At(idx).Name == name {
				node = e.m.At(idx)
				break
			}
		}
	}
	return node
}

// nodeCompletions writes the complete lines for one node: its visible
// subcommands, its effective flags (with negation forms), and flag
// values.
func (e *fishEmitter) nodeCompletions(cmd *model.Command) {
	cond := e.condFn(cmd)
	fmt.Fprintf(&e.b, "# %s\n", strings.Join(cmd.Path, " "))

	for _, idx := range cmd.Children {
		child := e.m.At(idx)
		if child.Hidden {
			continue
		}
		names := append([]string{child.Name}, child.Aliases...)
		for _, name := range names {
			fmt.Fprintf(&e.b, "complete -c %s -n %s -f -a %s", e.bin, cond, fishSingle(name))
			if child.Help != "" {
				fmt.Fprintf(&e.b, " -d %s", fishSingle(child.Help))
			}
			fmt.Fprintf(&e.b, "\n")
		}
	}

	for i := range cmd.Flags {
		flag := &cmd.Flags[i]
		if flag.Hidden {
			continue
		}
		e.flagCompletion(cmd, flag, cond)
	}

	for i := range cmd.Args {
		e.argCompletion(cmd, &cmd.Args[i], cond)
	}
	fmt.Fprintf(&e.b, "\n")
}

func (e *fishEmitter) flagCompletion(cmd *model.Command, flag *model.Flag, cond string) {
	var spec strings.Builder
	for _, s := range flag.Short {
		fmt.Fprintf(&spec, " -s %s", fishSingle(s))
	}
	for _, l := range flag.Long {
		fmt.Fprintf(&spec, " -l %s", fishSingle(l))
	}

	fmt.Fprintf(&e.b, "complete -c %s -n %s%s", e.bin, cond, spec.String())
	if flag.TakesValue() {
		switch flag.Provider.Kind {
		case model.ProviderChoices:
			fmt.Fprintf(&e.b, " -x -a %s", fishSingle(choiceWords(flag.Provider.Choices)))
		case model.ProviderFiles:
			fmt.Fprintf(&e.b, " -r")
		case model.ProviderExec:
			if e.opts.SpecFile != "" {
				fmt.Fprintf(&e.b, " -x -a %s", fishSingle(e.delegateCall()))
			} else {
				fmt.Fprintf(&e.b, " -x")
			}
		default:
			fmt.Fprintf(&e.b, " -x")
		}
	}
	if flag.Help != "" {
		fmt.Fprintf(&e.b, " -d %s", fishSingle(flag.Help))
	}
	fmt.Fprintf(&e.b, "\n")

	// Negation counterparts complete as presence-only flags.
	for _, n := range flag.Negates {
		fmt.Fprintf(&e.b, "complete -c %s -n %s -l %s", e.bin, cond, fishSingle(n))
		if flag.Help != "" {
			fmt.Fprintf(&e.b, " -d %s", fishSingle(flag.Help))
		}
		fmt.Fprintf(&e.b, "\n")
	}
}

func (e *fishEmitter) argCompletion(cmd *model.Command, arg *model.Arg, cond string) {
	switch arg.Provider.Kind {
	case model.ProviderChoices:
		fmt.Fprintf(&e.b, "complete -c %s -n %s -f -a %s", e.bin, cond, fishSingle(choiceWords(arg.Provider.Choices)))
		if arg.Help != "" {
			fmt.Fprintf(&e.b, " -d %s", fishSingle(arg.Help))
		}
		fmt.Fprintf(&e.b, "\n")
	case model.ProviderFiles:
		// Fall through to fish's default file completion.
	case model.ProviderExec:
		if e.opts.SpecFile != "" {
			fmt.Fprintf(&e.b, "complete -c %s -n %s -f -a %s\n", e.bin, cond, fishSingle(e.delegateCall()))
		}
	}
}

// delegateCall is the command substitution fish evaluates per keystroke
// to fetch dynamic candidates from the runtime word completer.
func (e *fishEmitter) delegateCall() string {
	return fmt.Sprintf("(clispec complete-word --shell fish --file %s -- (commandline -opc) (commandline -ct) 2>/dev/null)",
		shSingle(e.opts.SpecFile))
}

// choiceWords joins static choices the way fish's -a expects: space
// separated, individually escaped, with tab-appended descriptions.
func choiceWords(choices []model.Choice) string {
	words := make([]string, len(choices))
	for i, c := range choices {
		w := strings.ReplaceAll(c.Value, `\`, `\\`)
		w = strings.ReplaceAll(w, " ", `\ `)
		if c.Description != "" {
			w += "\t" + c.Description
		}
		words[i] = w
	}
	return strings.Join(words, "\n")
}

// fishWords renders a list of literals for a fish `contains` call
func fishWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fishSingle(w)
	}
	return strings.Join(quoted, " ")
}

func (e *fishEmitter) fn() string {
	return sanitizeIdent(e.bin)
}

func (e *fishEmitter) condFn(cmd *model.Command) string {
	parts := make([]string, len(cmd.Path))
	for i, p := range cmd.Path {
		parts[i] = sanitizeIdent(p)
	}
	return "__" + strings.Join(parts, "_") + "_cond"
}
