package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// Man renders the command tree as a roff manpage in the given section.
// Layout is the conventional NAME / SYNOPSIS / DESCRIPTION / OPTIONS /
// COMMANDS shape; subcommands get one COMMANDS entry each, flattened,
// since nested manpage hierarchies are their packager's concern.
func Man(m *model.Model, section int, date time.Time) string {
	if section <= 0 {
		section = 1
	}
	root := m.RootCommand()

	var b strings.Builder
	fmt.Fprintf(&b, ".TH %s %d \"%s\" \"%s\" \"User Commands\"\n",
		strings.ToUpper(roff(root.Name)), section, date.Format("January 2006"), roff(root.Name))

	b.WriteString(".SH NAME\n")
	if root.Help != "" {
		fmt.Fprintf(&b, "%s \\- %s\n", roff(root.Name), roff(root.Help))
	} else {
		fmt.Fprintf(&b, "%s\n", roff(root.Name))
	}

	b.WriteString(".SH SYNOPSIS\n")
	fmt.Fprintf(&b, ".B %s\n", roff(Usage(m, root)))

	if root.Description != "" {
		b.WriteString(".SH DESCRIPTION\n")
		fmt.Fprintf(&b, "%s\n", roff(root.Description))
	}

	if flags := visibleFlags(root); len(flags) > 0 {
		b.WriteString(".SH OPTIONS\n")
		writeManFlags(&b, flags)
	}

	wroteHeader := false
	m.Walk(func(cmd *model.Command) {
		if cmd.Parent < 0 || cmd.Hidden {
			return
		}
		if !wroteHeader {
			b.WriteString(".SH COMMANDS\n")
			wroteHeader = true
		}
		b.WriteString(".TP\n")
		fmt.Fprintf(&b, ".B %s\n", roff(Usage(m, cmd)))
		if cmd.Help != "" {
			fmt.Fprintf(&b, "%s\n", roff(cmd.Help))
		}
		if flags := ownFlags(cmd); len(flags) > 0 {
			b.WriteString(".RS\n")
			writeManFlags(&b, flags)
			b.WriteString(".RE\n")
		}
	})

	return b.String()
}

func writeManFlags(b *strings.Builder, flags []*model.Flag) {
	for _, flag := range flags {
		b.WriteString(".TP\n")
		fmt.Fprintf(b, ".B %s\n", roff(strings.Join(flag.Triggers(), ", ")))
		if flag.Help != "" {
			fmt.Fprintf(b, "%s\n", roff(flag.Help))
		}
	}
}

// ownFlags excludes inherited globals, which the ancestor already
// documents
func ownFlags(cmd *model.Command) []*model.Flag {
	var flags []*model.Flag
	for i := range cmd.Flags {
		if !cmd.Flags[i].Hidden && !cmd.Flags[i].Inherited {
			flags = append(flags, &cmd.Flags[i])
		}
	}
	return flags
}

// roff escapes text for roff: backslashes, leading dots and quotes
func roff(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "'") {
		s = `\&` + s
	}
	return s
}
