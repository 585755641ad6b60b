package generate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// emitZsh renders a zsh completion script in the same per-node function
// shape as the bash emitter, using _describe so candidates keep their
// descriptions. zsh's words array is 1-based with the command at index
// 1; CURRENT points at the word under the cursor.
func emitZsh(m *model.Model, opts Options) string {
	e := &zshEmitter{m: m, opts: opts, bin: m.RootCommand().Name}
	return e.emit()
}

type zshEmitter struct {
	m    *model.Model
	opts Options
	bin  string
	b    strings.Builder
}

func (e *zshEmitter) emit() string {
	fmt.Fprintf(&e.b, "#compdef %s\n", e.bin)
	fmt.Fprintf(&e.b, "# zsh completion for %s -- generated by clispec, do not edit\n\n", e.bin)

	if e.opts.SpecFile != "" {
		fmt.Fprintf(&e.b, "__%s_delegate() {\n", e.fn())
		fmt.Fprintf(&e.b, "    local -a lines\n")
		fmt.Fprintf(&e.b, "    lines=(\"${(@f)$(clispec complete-word --shell zsh --file %s --cword $((CURRENT-1)) -- \"${(@)words}\" 2>/dev/null)}\")\n",
			shSingle(e.opts.SpecFile))
		fmt.Fprintf(&e.b, "    (( ${#lines} )) && _describe -t values 'value' lines\n")
		fmt.Fprintf(&e.b, "}\n\n")
	}

	e.m.Walk(func(cmd *model.Command) { e.nodeFunc(cmd) })

	fmt.Fprintf(&e.b, "_%s() {\n", e.fn())
	fmt.Fprintf(&e.b, "    local cur=\"${words[CURRENT]}\" prev=\"${words[CURRENT-1]}\"\n")
	fmt.Fprintf(&e.b, "    %s 2\n", e.nodeFn(e.m.RootCommand()))
	fmt.Fprintf(&e.b, "}\n\n")
	fmt.Fprintf(&e.b, "_%s \"$@\"\n", e.fn())
	return e.b.String()
}

func (e *zshEmitter) nodeFunc(cmd *model.Command) {
	fmt.Fprintf(&e.b, "%s() {\n", e.nodeFn(cmd))
	fmt.Fprintf(&e.b, "    local idx=$1 no_sub=0 pos=0\n")
	fmt.Fprintf(&e.b, "    while (( idx < CURRENT )); do\n")
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

	if entries := e.flagEntries(cmd); len(entries) > 0 {
		fmt.Fprintf(&e.b, "    if [[ \"$cur\" == -* ]]; then\n")
		e.describe("options", "option", entries, 8)
		fmt.Fprintf(&e.b, "        return\n")
		fmt.Fprintf(&e.b, "    fi\n")
	}

	valueFlags := flagsTakingValues(cmd)
	if len(valueFlags) > 0 {
		fmt.Fprintf(&e.b, "    case \"$prev\" in\n")
		for _, f := range valueFlags {
			fmt.Fprintf(&e.b, "        %s)\n", strings.Join(triggerPatterns(f), "|"))
			e.provider(f.Provider, 12)
			fmt.Fprintf(&e.b, "            return ;;\n")
		}
		fmt.Fprintf(&e.b, "    esac\n")
	}

	fmt.Fprintf(&e.b, "    case $pos in\n")
	for i, arg := range cmd.Args {
		fmt.Fprintf(&e.b, "        %s)\n", posPattern(i, &arg, len(cmd.Args)))
		if i == 0 && len(cmd.Children) > 0 {
			e.describe("commands", "command", e.subcommandEntries(cmd), 12)
		}
		e.provider(arg.Provider, 12)
		fmt.Fprintf(&e.b, "            return ;;\n")
	}
	if len(cmd.Args) == 0 && len(cmd.Children) > 0 {
		fmt.Fprintf(&e.b, "        0)\n")
		e.describe("commands", "command", e.subcommandEntries(cmd), 12)
		fmt.Fprintf(&e.b, "            return ;;\n")
	}
	fmt.Fprintf(&e.b, "        *) ;;\n")
	fmt.Fprintf(&e.b, "    esac\n")
	fmt.Fprintf(&e.b, "}\n\n")
}

// describe writes a _describe block for the given value:description
// entries
func (e *zshEmitter) describe(tag, name string, entries []string, indent int) {
	if len(entries) == 0 {
		return
	}
	pad := strings.Repeat(" ", indent)
	quoted := make([]string, len(entries))
	for i, entry := range entries {
		quoted[i] = shSingle(entry)
	}
	fmt.Fprintf(&e.b, "%slocal -a _cands\n", pad)
	fmt.Fprintf(&e.b, "%s_cands=(%s)\n", pad, strings.Join(quoted, " "))
	fmt.Fprintf(&e.b, "%s_describe -t %s %s _cands\n", pad, tag, shSingle(name))
}

func (e *zshEmitter) subcommandEntries(cmd *model.Command) []string {
	var entries []string
	for _, idx := range cmd.Children {
		child := e.m.At(idx)
		if child.Hidden {
			continue
		}
		entries = append(entries, zshDescription(child.Name, child.Help))
		for _, a := range child.Aliases {
			entries = append(entries, zshDescription(a, child.Help))
		}
	}
	return entries
}

func (e *zshEmitter) flagEntries(cmd *model.Command) []string {
	var entries []string
	for i := range cmd.Flags {
		flag := &cmd.Flags[i]
		if flag.Hidden {
			continue
		}
		for _, t := range flag.Triggers() {
			entries = append(entries, zshDescription(t, flag.Help))
		}
	}
	return entries
}

func (e *zshEmitter) provider(p model.Provider, indent int) {
	pad := strings.Repeat(" ", indent)
	switch p.Kind {
	case model.ProviderChoices:
		entries := make([]string, len(p.Choices))
		for i, c := range p.Choices {
			entries[i] = zshDescription(c.Value, c.Description)
		}
		e.describe("values", "value", entries, indent)
	case model.ProviderFiles:
		if p.Pattern != "" {
			fmt.Fprintf(&e.b, "%s_files -g %s\n", pad, shSingle(p.Pattern))
		} else {
			fmt.Fprintf(&e.b, "%s_files\n", pad)
		}
	case model.ProviderExec:
		if e.opts.SpecFile != "" {
			fmt.Fprintf(&e.b, "%s__%s_delegate\n", pad, e.fn())
		}
	}
}

func (e *zshEmitter) fn() string {
	return sanitizeIdent(e.bin)
}

func (e *zshEmitter) nodeFn(cmd *model.Command) string {
	parts := make([]string, len(cmd.Path))
	for i, p := range cmd.Path {
		parts[i] = sanitizeIdent(p)
	}
	return "__" + strings.Join(parts, "_") + "_znode"
}
