package generate

import "strings"

// Quoting is where completion scripts rot: a literal containing a space
// or a shell metacharacter that survives emission unquoted is a
// correctness bug. Each target gets its own escaper matching its own
// unquoting rules, and the round-trip is covered by tests.

// bashAnsiC renders s as a bash ANSI-C quoted string ($'...'), the only
// bash quoting form that can carry embedded newlines, which the emitted
// scripts use as the candidate separator.
func bashAnsiC(s string) string {
	var b strings.Builder
	b.WriteString("$'")
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString("'")
	return b.String()
}

// shSingle renders s as a POSIX single-quoted string, closing and
// reopening around embedded quotes.
func shSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// zshDescription escapes a value for use inside a zsh _describe entry,
// where a colon separates value from description.
func zshDescription(value, desc string) string {
	v := strings.ReplaceAll(value, ":", `\:`)
	if desc == "" {
		return v
	}
	return v + ":" + strings.ReplaceAll(desc, ":", `\:`)
}

// fishSingle renders s as a fish single-quoted string. Fish recognizes
// backslash escapes for quote and backslash inside single quotes.
func fishSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// figString escapes s for a double-quoted TypeScript string literal
func figString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// figTemplate escapes s for a TypeScript template literal, the form the
// Fig spec uses for descriptions
func figTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", `\${`)
	return s
}
