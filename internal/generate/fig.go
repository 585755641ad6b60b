package generate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// emitFig renders the Fig declarative completion spec: a TypeScript
// object tree structurally isomorphic to the command model. Fig cannot
// embed arbitrary process invocation inline, so dynamic providers are
// expressed as generator scripts that call back into the runtime word
// completer.
func emitFig(m *model.Model, opts Options) string {
	e := &figEmitter{m: m, opts: opts}
	return e.emit()
}

type figEmitter struct {
	m    *model.Model
	opts Options
	b    strings.Builder
}

func (e *figEmitter) emit() string {
	root := e.m.RootCommand()

	e.b.WriteString("const completionSpec: Fig.Spec = {\n")
	fmt.Fprintf(&e.b, "  name: \"%s\",\n", figString(root.Name))
	fmt.Fprintf(&e.b, "  description: `%s`,\n", figTemplate(root.Help))

	e.b.WriteString("  subcommands: [\n")
	for _, idx := range root.Children {
		e.subcommand(e.m.At(idx), 2)
	}
	e.b.WriteString("  ],\n")

	e.b.WriteString("  options: [\n")
	for i := range root.Flags {
		e.flag(&root.Flags[i], 2)
	}
	e.b.WriteString("  ],\n")

	if len(root.Args) > 0 {
		e.b.WriteString("  args: [\n")
		for i := range root.Args {
			e.arg(&root.Args[i], 2)
		}
		e.b.WriteString("  ],\n")
	}

	e.b.WriteString("};\n")
	e.b.WriteString("export default completionSpec;\n")
	return e.b.String()
}

func (e *figEmitter) subcommand(cmd *model.Command, indent int) {
	pad := strings.Repeat("  ", indent)

	fmt.Fprintf(&e.b, "%s{\n", pad)
	if len(cmd.Aliases) > 0 {
		names := make([]string, 0, 1+len(cmd.Aliases))
		names = append(names, fmt.Sprintf("\"%s\"", figString(cmd.Name)))
		for _, a := range cmd.Aliases {
			names = append(names, fmt.Sprintf("\"%s\"", figString(a)))
		}
		fmt.Fprintf(&e.b, "%s  displayName: \"%s\",\n", pad, figString(cmd.Name))
		fmt.Fprintf(&e.b, "%s  name: [%s],\n", pad, strings.Join(names, ", "))
	} else {
		fmt.Fprintf(&e.b, "%s  name: \"%s\",\n", pad, figString(cmd.Name))
	}
	fmt.Fprintf(&e.b, "%s  description: `%s`,\n", pad, figTemplate(cmd.Help))
	if cmd.Hidden {
		fmt.Fprintf(&e.b, "%s  hidden: true,\n", pad)
	}

	if len(cmd.Args) > 0 {
		fmt.Fprintf(&e.b, "%s  args: [\n", pad)
		for i := range cmd.Args {
			e.arg(&cmd.Args[i], indent+2)
		}
		fmt.Fprintf(&e.b, "%s  ],\n", pad)
	}

	if len(cmd.Flags) > 0 {
		fmt.Fprintf(&e.b, "%s  options: [\n", pad)
		for i := range cmd.Flags {
			e.flag(&cmd.Flags[i], indent+2)
		}
		fmt.Fprintf(&e.b, "%s  ],\n", pad)
	}

	if len(cmd.Children) > 0 {
		fmt.Fprintf(&e.b, "%s  subcommands: [\n", pad)
		for _, idx := range cmd.Children {
			e.subcommand(e.m.At(idx), indent+2)
		}
		fmt.Fprintf(&e.b, "%s  ],\n", pad)
	}

	fmt.Fprintf(&e.b, "%s},\n", pad)
}

func (e *figEmitter) flag(flag *model.Flag, indent int) {
	pad := strings.Repeat("  ", indent)

	var names []string
	for _, s := range flag.Short {
		names = append(names, fmt.Sprintf("\"-%s\"", figString(s)))
	}
	for _, l := range flag.Long {
		names = append(names, fmt.Sprintf("\"--%s\"", figString(l)))
	}
	for _, n := range flag.Negates {
		names = append(names, fmt.Sprintf("\"--%s\"", figString(n)))
	}

	fmt.Fprintf(&e.b, "%s{\n", pad)
	fmt.Fprintf(&e.b, "%s  name: [%s],\n", pad, strings.Join(names, ", "))
	if flag.Help != "" {
		fmt.Fprintf(&e.b, "%s  description: `%s`,\n", pad, figTemplate(flag.Help))
	}
	if flag.TakesValue() {
		fmt.Fprintf(&e.b, "%s  args: [\n", pad)
		e.valueArg(&model.Arg{Name: valueName(flag), Provider: flag.Provider, Default: flag.Default}, indent+2)
		fmt.Fprintf(&e.b, "%s  ],\n", pad)
	}
	if flag.Arity == model.FlagMany {
		fmt.Fprintf(&e.b, "%s  isRepeatable: true,\n", pad)
	}
	if flag.Global {
		fmt.Fprintf(&e.b, "%s  isPersistent: true,\n", pad)
	}
	if flag.Hidden {
		fmt.Fprintf(&e.b, "%s  hidden: true,\n", pad)
	}
	fmt.Fprintf(&e.b, "%s},\n", pad)
}

func (e *figEmitter) arg(arg *model.Arg, indent int) {
	pad := strings.Repeat("  ", indent)

	fmt.Fprintf(&e.b, "%s{\n", pad)
	fmt.Fprintf(&e.b, "%s  name: \"%s\",\n", pad, figString(arg.Name))
	if arg.Help != "" {
		fmt.Fprintf(&e.b, "%s  description: `%s`,\n", pad, figTemplate(arg.Help))
	}
	if !arg.Required() {
		fmt.Fprintf(&e.b, "%s  isOptional: true,\n", pad)
	}
	if arg.Variadic() {
		fmt.Fprintf(&e.b, "%s  isVariadic: true,\n", pad)
	}
	if arg.Default != "" {
		fmt.Fprintf(&e.b, "%s  default: \"%s\",\n", pad, figString(arg.Default))
	}
	e.generators(arg.Provider, indent+1)
	fmt.Fprintf(&e.b, "%s},\n", pad)
}

// valueArg renders a flag's value slot the same way as a positional
func (e *figEmitter) valueArg(arg *model.Arg, indent int) {
	e.arg(arg, indent)
}

// generators attaches the provider to the arg. Static choices become
// suggestions; dynamic providers become a generator script invoking the
// runtime word completer, since the declarative runtime cannot run
// arbitrary helpers inline.
func (e *figEmitter) generators(p model.Provider, indent int) {
	pad := strings.Repeat("  ", indent)
	switch p.Kind {
	case model.ProviderChoices:
		var entries []string
		for _, c := range p.Choices {
			if c.Description != "" {
				entries = append(entries, fmt.Sprintf("{ name: \"%s\", description: `%s` }", figString(c.Value), figTemplate(c.Description)))
			} else {
				entries = append(entries, fmt.Sprintf("\"%s\"", figString(c.Value)))
			}
		}
		fmt.Fprintf(&e.b, "%ssuggestions: [%s],\n", pad, strings.Join(entries, ", "))
	case model.ProviderFiles:
		if p.Pattern != "" {
			fmt.Fprintf(&e.b, "%sgenerators: { template: \"filepaths\", filterTemplateSuggestions: (s) => s.filter((x) => x.name?.endsWith(\"%s\") ?? true) },\n",
				pad, figString(strings.TrimPrefix(p.Pattern, "*")))
		} else {
			fmt.Fprintf(&e.b, "%stemplate: \"filepaths\",\n", pad)
		}
	case model.ProviderExec:
		if e.opts.SpecFile == "" {
			return
		}
		// Function-form script: the runtime hands over the typed tokens
		// (program name first, partial token last), which complete-word
		// needs to locate the node and the provider under the cursor.
		fmt.Fprintf(&e.b, "%sgenerators: { script: (tokens) => [\"clispec\", \"complete-word\", \"--shell\", \"fig\", \"--file\", \"%s\", \"--cword\", `${tokens.length - 1}`, \"--\", ...tokens], splitOn: \"\\n\" },\n",
			pad, figString(e.opts.SpecFile))
	}
}

// valueName labels a flag's value slot in the Fig spec
func valueName(flag *model.Flag) string {
	if len(flag.Long) > 0 {
		return flag.Long[0]
	}
	if len(flag.Short) > 0 {
		return flag.Short[0]
	}
	return "value"
}
