package docs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/clispec/internal/model"
)

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	helpItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	helpDimStyle     = lipgloss.NewStyle().Faint(true)
)

// Help renders terminal help text for the command named by path (names
// from the root, root itself when path is empty). Unknown paths return
// an error listing where the lookup stopped.
func Help(m *model.Model, path []string) (string, error) {
	cmd := m.RootCommand()
	for _, name := range path {
		found := false
		for _, idx := range cmd.Children {
			if m.At(idx).Matches(name) {
				cmd = m.At(idx)
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("unknown command %q under %q", name, strings.Join(cmd.Path, " "))
		}
	}

	var b strings.Builder

	title := strings.Join(cmd.Path, " ")
	b.WriteString(helpTitleStyle.Render(title))
	if cmd.Help != "" {
		b.WriteString(" - " + cmd.Help)
	}
	b.WriteString("\n\n")
	if cmd.Description != "" {
		b.WriteString(cmd.Description + "\n\n")
	}

	b.WriteString(helpSectionStyle.Render("Usage:") + "\n")
	b.WriteString("  " + Usage(m, cmd) + "\n\n")

	if len(cmd.Children) > 0 {
		b.WriteString(helpSectionStyle.Render("Commands:") + "\n")
		width := 0
		for _, idx := range cmd.Children {
			child := m.At(idx)
			if !child.Hidden && len(child.Name) > width {
				width = len(child.Name)
			}
		}
		for _, idx := range cmd.Children {
			child := m.At(idx)
			if child.Hidden {
				continue
			}
			name := helpItemStyle.Render(fmt.Sprintf("%-*s", width, child.Name))
			b.WriteString("  " + name + "  " + child.Help)
			if len(child.Aliases) > 0 {
				b.WriteString(" " + helpDimStyle.Render("(alias: "+strings.Join(child.Aliases, ", ")+")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if args := visibleArgs(cmd); len(args) > 0 {
		b.WriteString(helpSectionStyle.Render("Arguments:") + "\n")
		for _, arg := range args {
			b.WriteString("  " + helpItemStyle.Render(argToken(arg)) + "  " + arg.Help)
			if arg.Default != "" {
				b.WriteString(" " + helpDimStyle.Render("(default: "+arg.Default+")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if flags := visibleFlags(cmd); len(flags) > 0 {
		b.WriteString(helpSectionStyle.Render("Flags:") + "\n")
		rendered := make([]string, len(flags))
		width := 0
		for i, flag := range flags {
			rendered[i] = strings.Join(flag.Triggers(), ", ")
			if len(rendered[i]) > width {
				width = len(rendered[i])
			}
		}
		for i, flag := range flags {
			b.WriteString("  " + helpItemStyle.Render(fmt.Sprintf("%-*s", width, rendered[i])) + "  " + flag.Help)
			if flag.Inherited {
				b.WriteString(" " + helpDimStyle.Render("(global)"))
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
