package complete

import (
	"context"
	"sort"
	"strings"

	"github.com/felixgeelhaar/clispec/internal/model"
)

// Request is one "complete this word now" query: the command line as the
// shell tokenized it (excluding the binary name) and the index of the
// token under the cursor. CWord may equal len(Words) when the cursor
// sits after the last token.
type Request struct {
	Words []string
	CWord int
}

// Word answers a completion query against a built model. The walk
// consumes leading tokens that name child commands, tracks flags (and
// the one awaiting a value) and filled positionals, then classifies the
// cursor token and delegates value resolution to the Resolver. It is
// deterministic and side-effect-free apart from bounded exec providers.
func (r *Resolver) Word(ctx context.Context, m *model.Model, req Request) []Candidate {
	cword := req.CWord
	if cword < 0 || cword > len(req.Words) {
		cword = len(req.Words)
	}
	ctoken := ""
	if cword < len(req.Words) {
		ctoken = req.Words[cword]
	}

	node, state := r.walk(m, req.Words[:cword])

	line := LineContext{Words: req.Words, Current: cword}
	if cword > 0 {
		line.Prev = cword - 1
	}

	switch {
	case ctoken == "-":
		// A lone dash offers everything: shorts first, then longs.
		return r.flagCandidates(node, "", true)

	case strings.HasPrefix(ctoken, "-"):
		return r.flagCandidates(node, ctoken, false)

	case state.awaiting != nil:
		return r.Resolve(ctx, state.awaiting.Provider, ctoken, line)

	case len(node.Children) > 0 && !state.positional:
		return r.subcommandCandidates(m, node, ctoken)

	default:
		if arg := nextArg(node, state.filled); arg != nil {
			return r.Resolve(ctx, arg.Provider, ctoken, line)
		}
		return nil
	}
}

// walkState tracks what the tokens before the cursor already consumed
type walkState struct {
	// awaiting is set when the token before the cursor is a value-taking
	// flag whose value has not been supplied yet
	awaiting *model.Flag

	// filled counts positional arguments already consumed at the node
	filled int

	// positional reports that a non-command token was seen, which ends
	// subcommand matching for the rest of the line
	positional bool
}

// walk consumes the tokens before the cursor, descending through child
// commands by name or alias. An unrecognized token terminates the
// descent at the last matched node; the remainder is treated as that
// node's flags and arguments.
func (r *Resolver) walk(m *model.Model, tokens []string) (*model.Command, walkState) {
	node := m.RootCommand()
	var state walkState

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if state.awaiting != nil {
			// This token is the awaited flag value.
			state.awaiting = nil
			continue
		}

		if strings.HasPrefix(token, "-") && token != "-" {
			if strings.Contains(token, "=") {
				// --flag=value carries its value inline.
				continue
			}
			if flag := node.LookupFlag(token); flag != nil && flag.TakesValue() {
				state.awaiting = flag
			}
			continue
		}

		if !state.positional {
			if child := matchChild(m, node, token); child != nil {
				node = child
				state.filled = 0
				continue
			}
		}

		// Not a subcommand: a positional argument of the current node.
		state.positional = true
		state.filled++
	}

	return node, state
}

func matchChild(m *model.Model, node *model.Command, token string) *model.Command {
	for _, idx := range node.Children {
		child := m.At(idx)
		if child.Matches(token) {
			return child
		}
	}
	return nil
}

// nextArg returns the positional argument the next free token belongs
// to. A variadic trailing argument absorbs all surplus tokens.
func nextArg(node *model.Command, filled int) *model.Arg {
	if len(node.Args) == 0 {
		return nil
	}
	if filled < len(node.Args) {
		return &node.Args[filled]
	}
	last := &node.Args[len(node.Args)-1]
	if last.Variadic() {
		return last
	}
	return nil
}

// subcommandCandidates offers the visible children (and their aliases)
// whose names extend the cursor token. An ambiguous prefix yields every
// match, in declaration order, not a forced resolution.
func (r *Resolver) subcommandCandidates(m *model.Model, node *model.Command, ctoken string) []Candidate {
	var cands []Candidate
	for _, idx := range node.Children {
		child := m.At(idx)
		if child.Hidden {
			continue
		}
		if hasPrefix(child.Name, ctoken, r.FoldCase) {
			cands = append(cands, Candidate{Value: child.Name, Description: child.Help})
		}
		for _, alias := range child.Aliases {
			if hasPrefix(alias, ctoken, r.FoldCase) {
				cands = append(cands, Candidate{Value: alias, Description: child.Help})
			}
		}
	}
	return cands
}

// flagCandidates offers the effective flag set of the node: short, long
// and negation forms. With all set, shorts come before longs, each group
// sorted; otherwise matches are sorted lexically, the way completion
// scripts conventionally present options.
func (r *Resolver) flagCandidates(node *model.Command, ctoken string, all bool) []Candidate {
	var shorts, longs []Candidate
	for i := range node.Flags {
		flag := &node.Flags[i]
		if flag.Hidden {
			continue
		}
		for _, s := range flag.Short {
			shorts = append(shorts, Candidate{Value: "-" + s, Description: flag.Help})
		}
		for _, l := range flag.Long {
			longs = append(longs, Candidate{Value: "--" + l, Description: flag.Help})
		}
		for _, n := range flag.Negates {
			longs = append(longs, Candidate{Value: "--" + n, Description: flag.Help})
		}
	}

	sortCands := func(cands []Candidate) {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Value < cands[j].Value })
	}
	sortCands(shorts)
	sortCands(longs)

	if all {
		return append(shorts, longs...)
	}

	pool := longs
	if !strings.HasPrefix(ctoken, "--") {
		pool = append(shorts, longs...)
	}
	var cands []Candidate
	for _, c := range pool {
		if hasPrefix(c.Value, ctoken, r.FoldCase) {
			cands = append(cands, c)
		}
	}
	return cands
}
