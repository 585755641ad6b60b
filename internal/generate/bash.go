package generate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// emitBash renders a self-contained bash completion script: one shell
// function per command node, walking the typed words exactly like the
// runtime word completer. Static choices are inlined (ANSI-C quoted,
// newline separated, so literals with spaces survive compgen); exec
// providers delegate to `clispec complete-word` when a spec file was
// baked in.
func emitBash(m *model.Model, opts Options) string {
	e := &bashEmitter{m: m, opts: opts, bin: m.RootCommand().Name}
	return e.emit()
}

type bashEmitter struct {
	m    *model.Model
	opts Options
	bin  string
	b    strings.Builder
}

func (e *bashEmitter) emit() string {
	fmt.Fprintf(&e.b, "# bash completion for %s -- generated by clispec, do not edit\n\n", e.bin)

	if e.opts.SpecFile != "" {
		fmt.Fprintf(&e.b, "__%s_delegate() {\n", e.fn())
		fmt.Fprintf(&e.b, "    local IFS=$'\\n'\n")
		fmt.Fprintf(&e.b, "    COMPREPLY=( $(compgen -W \"$(clispec complete-word --shell bash --file %s --cword \"$cword\" -- \"${words[@]}\" 2>/dev/null)\" -- \"$cur\") )\n",
			shSingle(e.opts.SpecFile))
		fmt.Fprintf(&e.b, "}\n\n")
	}

	e.m.Walk(func(cmd *model.Command) { e.nodeFunc(cmd) })

	fmt.Fprintf(&e.b, "_%s() {\n", e.fn())
	fmt.Fprintf(&e.b, "    local cur prev words cword\n")
	fmt.Fprintf(&e.b, "    if declare -F _get_comp_words_by_ref >/dev/null 2>&1; then\n")
	fmt.Fprintf(&e.b, "        _get_comp_words_by_ref -n : cur prev words cword\n")
	fmt.Fprintf(&e.b, "    else\n")
	fmt.Fprintf(&e.b, "        words=(\"${COMP_WORDS[@]}\") cword=$COMP_CWORD\n")
	fmt.Fprintf(&e.b, "        cur=\"${COMP_WORDS[COMP_CWORD]}\" prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&e.b, "    fi\n")
	fmt.Fprintf(&e.b, "    local IFS=$'\\n'\n")
	fmt.Fprintf(&e.b, "    %s 1\n", e.nodeFn(e.m.RootCommand()))
	fmt.Fprintf(&e.b, "}\n\n")
	fmt.Fprintf(&e.b, "complete -o bashdefault -o default -F _%s %s\n", e.fn(), e.bin)
	return e.b.String()
}

// nodeFunc writes the completion function for one command node
func (e *bashEmitter) nodeFunc(cmd *model.Command) {
	fmt.Fprintf(&e.b, "%s() {\n", e.nodeFn(cmd))
	fmt.Fprintf(&e.b, "    local idx=$1 no_sub=0 pos=0\n")

	// Walk the words between this node's start and the cursor: descend
	// into subcommands, skip flags and their values, count positionals.
	fmt.Fprintf(&e.b, "    while (( idx < cword )); do\n")
	if len(cmd.Children) > 0 {
		fmt.Fprintf(&e.b, "        if (( ! no_sub )); then\n")
		fmt.Fprintf(&e.b, "            case \"${words[idx]}\" in\n")
		for _, idx := range cmd.Children {
			child := e.m.At(idx)
			fmt.Fprintf(&e.b, "                %s) %s $((idx+1)); return ;;\n",
				strings.Join(namePatterns(child), "|"), e.nodeFn(child))
		}
		fmt.Fprintf(&e.b, "            esac\n")
		fmt.Fprintf(&e.b, "        fi\n")
	}
	fmt.Fprintf(&e.b, "        case \"${words[idx]}\" in\n")
	if pats := valueFlagPatterns(cmd); len(pats) > 0 {
		fmt.Fprintf(&e.b, "            %s) (( idx += 2 )); continue ;;\n", strings.Join(pats, "|"))
	}
	fmt.Fprintf(&e.b, "            --*=*) (( idx += 1 )); continue ;;\n")
	fmt.Fprintf(&e.b, "            -?*) (( idx += 1 )); continue ;;\n")
	fmt.Fprintf(&e.b, "            *) no_sub=1; (( pos += 1 )); (( idx += 1 )); continue ;;\n")
	fmt.Fprintf(&e.b, "        esac\n")
	fmt.Fprintf(&e.b, "    done\n")

	// Flag names before flag values: a word starting with a dash is
	// always a trigger being typed.
	if flags := flagNames(cmd); len(flags) > 0 {
		fmt.Fprintf(&e.b, "    if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&e.b, "        COMPREPLY=( $(compgen -W %s -- \"$cur\") )\n", bashAnsiC(strings.Join(flags, "\n")))
		fmt.Fprintf(&e.b, "        return\n")
		fmt.Fprintf(&e.b, "    fi\n")
	}

	// Value of the flag before the cursor.
	valueFlags := flagsTakingValues(cmd)
	if len(valueFlags) > 0 {
		fmt.Fprintf(&e.b, "    case \"$prev\" in\n")
		for _, f := range valueFlags {
			fmt.Fprintf(&e.b, "        %s)\n", strings.Join(triggerPatterns(f), "|"))
			e.providerReply(f.Provider, 12)
			fmt.Fprintf(&e.b, "            return ;;\n")
		}
		fmt.Fprintf(&e.b, "    esac\n")
	}

	// Positional dispatch, arity-aware. Position 0 also offers the
	// subcommands when the walk is still at the descent point.
	fmt.Fprintf(&e.b, "    case $pos in\n")
	for i, arg := range cmd.Args {
		fmt.Fprintf(&e.b, "        %s)\n", posPattern(i, &arg, len(cmd.Args)))
		if i == 0 && len(cmd.Children) > 0 {
			e.subcommandReply(cmd, 12)
		}
		e.providerAppend(arg.Provider, 12, i == 0 && len(cmd.Children) > 0)
		fmt.Fprintf(&e.b, "            return ;;\n")
	}
	if len(cmd.Args) == 0 && len(cmd.Children) > 0 {
		fmt.Fprintf(&e.b, "        0)\n")
		e.subcommandReply(cmd, 12)
		fmt.Fprintf(&e.b, "            return ;;\n")
	}
	fmt.Fprintf(&e.b, "        *) COMPREPLY=() ;;\n")
	fmt.Fprintf(&e.b, "    esac\n")
	fmt.Fprintf(&e.b, "}\n\n")
}

// posPattern yields the case pattern for argument i: the trailing
// variadic argument absorbs every surplus position.
func posPattern(i int, arg *model.Arg, total int) string {
	if i == total-1 && arg.Variadic() {
		return "*"
	}
	return fmt.Sprintf("%d", i)
}

func (e *bashEmitter) subcommandReply(cmd *model.Command, indent int) {
	pad := strings.Repeat(" ", indent)
	var names []string
	for _, idx := range cmd.Children {
		child := e.m.At(idx)
		if child.Hidden {
			continue
		}
		names = append(names, child.Name)
		names = append(names, child.Aliases...)
	}
	fmt.Fprintf(&e.b, "%sCOMPREPLY=( $(compgen -W %s -- \"$cur\") )\n", pad, bashAnsiC(strings.Join(names, "\n")))
}

func (e *bashEmitter) providerReply(p model.Provider, indent int) {
	e.provider(p, indent, false)
}

func (e *bashEmitter) providerAppend(p model.Provider, indent int, appendTo bool) {
	e.provider(p, indent, appendTo)
}

func (e *bashEmitter) provider(p model.Provider, indent int, appendTo bool) {
	pad := strings.Repeat(" ", indent)
	reply := "COMPREPLY=("
	if appendTo {
		reply = "COMPREPLY+=("
	}
	switch p.Kind {
	case model.ProviderChoices:
		values := make([]string, len(p.Choices))
		for i, c := range p.Choices {
			values[i] = c.Value
		}
		fmt.Fprintf(&e.b, "%s%s $(compgen -W %s -- \"$cur\") )\n", pad, reply, bashAnsiC(strings.Join(values, "\n")))
	case model.ProviderFiles:
		if p.Pattern != "" {
			fmt.Fprintf(&e.b, "%s%s $(compgen -d -- \"$cur\") $(compgen -f -X '!%s' -- \"$cur\") )\n", pad, reply, p.Pattern)
		} else {
			fmt.Fprintf(&e.b, "%s%s $(compgen -f -- \"$cur\") )\n", pad, reply)
		}
	case model.ProviderExec:
		if e.opts.SpecFile != "" {
			fmt.Fprintf(&e.b, "%s__%s_delegate\n", pad, e.fn())
		} else if !appendTo {
			fmt.Fprintf(&e.b, "%sCOMPREPLY=()\n", pad)
		}
	default:
		if !appendTo {
			fmt.Fprintf(&e.b, "%sCOMPREPLY=()\n", pad)
		}
	}
}

// fn returns the sanitized function-name stem for the binary
func (e *bashEmitter) fn() string {
	return sanitizeIdent(e.bin)
}

// nodeFn returns the function name for a node, derived from its path
func (e *bashEmitter) nodeFn(cmd *model.Command) string {
	parts := make([]string, len(cmd.Path))
	for i, p := range cmd.Path {
		parts[i] = sanitizeIdent(p)
	}
	return "__" + strings.Join(parts, "_") + "_node"
}

func sanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '-' || r == '.' || r == ' ' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// namePatterns returns the case patterns matching a command: its name
// and every alias
func namePatterns(cmd *model.Command) []string {
	pats := []string{shSingle(cmd.Name)}
	for _, a := range cmd.Aliases {
		pats = append(pats, shSingle(a))
	}
	return pats
}

// triggerPatterns returns the case patterns for a flag's trigger forms
// (negation forms excluded: a negation never takes a value)
func triggerPatterns(f *model.Flag) []string {
	var pats []string
	for _, s := range f.Short {
		pats = append(pats, shSingle("-"+s))
	}
	for _, l := range f.Long {
		pats = append(pats, shSingle("--"+l))
	}
	return pats
}

// valueFlagPatterns returns the case patterns of every value-taking
// flag of the node, for skipping flag values during the walk
func valueFlagPatterns(cmd *model.Command) []string {
	var pats []string
	for i := range cmd.Flags {
		if cmd.Flags[i].TakesValue() {
			pats = append(pats, triggerPatterns(&cmd.Flags[i])...)
		}
	}
	return pats
}

// flagsTakingValues returns the node's value-taking flags
func flagsTakingValues(cmd *model.Command) []*model.Flag {
	var flags []*model.Flag
	for i := range cmd.Flags {
		if cmd.Flags[i].TakesValue() && !cmd.Flags[i].Hidden {
			flags = append(flags, &cmd.Flags[i])
		}
	}
	return flags
}

// flagNames returns every visible trigger form of the node's effective
// flag set, including negation counterparts
func flagNames(cmd *model.Command) []string {
	var names []string
	for i := range cmd.Flags {
		if cmd.Flags[i].Hidden {
			continue
		}
		names = append(names, cmd.Flags[i].Triggers()...)
	}
	return names
}
