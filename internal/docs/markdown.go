// Package docs renders human-readable documentation from a command
// model. Every renderer is a pure function of the model; writing the
// result anywhere is the caller's concern.
package docs

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// Markdown renders the full command tree as a single markdown document:
// one section per visible command, with usage line, flag table and
// argument list.
func Markdown(m *model.Model) string {
	var b strings.Builder

	root := m.RootCommand()
	fmt.Fprintf(&b, "# %s\n\n", root.Name)
	if root.Help != "" {
		fmt.Fprintf(&b, "%s\n\n", root.Help)
	}
	if root.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", root.Description)
	}

	m.Walk(func(cmd *model.Command) {
		if cmd.Hidden {
			return
		}
		if cmd.Parent >= 0 {
			fmt.Fprintf(&b, "## `%s`\n\n", strings.Join(cmd.Path, " "))
			if len(cmd.Aliases) > 0 {
				fmt.Fprintf(&b, "Aliases: %s\n\n", "`"+strings.Join(cmd.Aliases, "`, `")+"`")
			}
			if cmd.Help != "" {
				fmt.Fprintf(&b, "%s\n\n", cmd.Help)
			}
			if cmd.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", cmd.Description)
			}
		}

		fmt.Fprintf(&b, "```\n%s\n```\n\n", Usage(m, cmd))

		if args := visibleArgs(cmd); len(args) > 0 {
			b.WriteString("### Arguments\n\n")
			for _, arg := range args {
				fmt.Fprintf(&b, "- `%s`", argToken(arg))
				if arg.Help != "" {
					fmt.Fprintf(&b, " — %s", arg.Help)
				}
				if arg.Default != "" {
					fmt.Fprintf(&b, " (default: `%s`)", arg.Default)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		if flags := visibleFlags(cmd); len(flags) > 0 {
			b.WriteString("### Flags\n\n")
			b.WriteString("| Flag | Description |\n|---|---|\n")
			for _, flag := range flags {
				fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(flag.Triggers(), "`, `"), markdownCell(flag.Help))
			}
			b.WriteString("\n")
		}
	})

	return b.String()
}

// Usage builds the one-line synopsis for a command
func Usage(m *model.Model, cmd *model.Command) string {
	parts := append([]string{}, cmd.Path...)
	if len(visibleFlags(cmd)) > 0 {
		parts = append(parts, "[flags]")
	}
	if len(cmd.Children) > 0 {
		parts = append(parts, "<command>")
	}
	for i := range cmd.Args {
		parts = append(parts, argToken(&cmd.Args[i]))
	}
	return strings.Join(parts, " ")
}

// argToken renders an argument the way usage lines conventionally do:
// <required>, [optional], [variadic...]
func argToken(arg *model.Arg) string {
	switch arg.Arity {
	case model.ArgOptional:
		return "[" + arg.Name + "]"
	case model.ArgVariadic:
		return "[" + arg.Name + "...]"
	default:
		return "<" + arg.Name + ">"
	}
}

func markdownCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

func visibleFlags(cmd *model.Command) []*model.Flag {
	var flags []*model.Flag
	for i := range cmd.Flags {
		if !cmd.Flags[i].Hidden {
			flags = append(flags, &cmd.Flags[i])
		}
	}
	return flags
}

func visibleArgs(cmd *model.Command) []*model.Arg {
	var args []*model.Arg
	for i := range cmd.Args {
		args = append(args, &cmd.Args[i])
	}
	return args
}
