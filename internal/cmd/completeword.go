package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clispec/internal/complete"
	"github.com/felixgeelhaar/clispec/internal/exec"
	"github.com/felixgeelhaar/clispec/internal/log"
	"github.com/felixgeelhaar/clispec/internal/spec"
)

// specCache keeps parsed specs across complete-word invocations within
// one process, keyed by content hash. A fresh process pays one parse;
// a long-lived integration driving many queries pays it once per edit.
var specCache = spec.NewCache()

var completeWordCmd = newCompleteWordCmd()

func init() {
	rootCmd.AddCommand(completeWordCmd)
}

func newCompleteWordCmd() *cobra.Command {
	var in specInput
	var shell string
	var cword int
	var timeout time.Duration
	var foldCase bool

	cmd := &cobra.Command{
		Use:     "complete-word [flags] -- words...",
		Aliases: []string{"cw"},
		Short:   "Complete the word under the cursor for a command line",
		Long: `complete-word answers a single completion query: given the spec, the
shell kind, the typed words (including the program name) and the cursor
word index, it prints the candidate list to stdout, one per line. It is
the entry point the emitted scripts delegate dynamic providers to, and
the only completion mechanism for runtimes with no static scripts.`,
		RunE: func(cmd *cobra.Command, words []string) error {
			doc, err := loadForCompletion(&in)
			if err != nil {
				return err
			}
			m, err := buildModel(doc)
			if err != nil {
				return err
			}

			// The first word is the program name; the walk starts below it.
			if cword < 0 {
				cword = len(words) - 1
				if cword < 0 {
					cword = 0
				}
			}
			req := complete.Request{CWord: cword - 1}
			if len(words) > 0 {
				req.Words = words[1:]
			}

			resolver := &complete.Resolver{
				Runner:   &exec.ShellRunner{Timeout: timeout},
				FoldCase: foldCase,
				Logger:   log.DefaultLogger(),
			}

			candidates := resolver.Word(cmd.Context(), m, req)
			printCandidates(cmd, shell, candidates)
			return nil
		},
	}

	addSpecFlags(cmd, &in)
	cmd.Flags().StringVar(&shell, "shell", "bash", "shell kind (bash, zsh, fish, fig)")
	cmd.Flags().IntVar(&cword, "cword", -1, "index of the word under the cursor (default: last word)")
	cmd.Flags().DurationVar(&timeout, "timeout", exec.DefaultTimeout, "per-helper completion timeout")
	cmd.Flags().BoolVar(&foldCase, "fold-case", false, "match candidates case-insensitively")
	return cmd
}

// printCandidates writes the candidate list in the shell's preferred
// line format. Descriptions travel only where the shell can read them.
func printCandidates(cmd *cobra.Command, shell string, candidates []complete.Candidate) {
	out := cmd.OutOrStdout()

	anyDesc := false
	for _, c := range candidates {
		if c.Description != "" {
			anyDesc = true
			break
		}
	}

	for _, c := range candidates {
		switch {
		case anyDesc && shell == "fish":
			fmt.Fprintf(out, "%s\t%s\n", c.Value, c.Description)
		case anyDesc && shell == "zsh":
			fmt.Fprintf(out, "%s\n", zshCandidate(c))
		default:
			fmt.Fprintf(out, "%s\n", c.Value)
		}
	}
}

func zshCandidate(c complete.Candidate) string {
	value := strings.ReplaceAll(c.Value, ":", `\:`)
	if c.Description == "" {
		return value
	}
	return value + ":" + strings.ReplaceAll(c.Description, ":", `\:`)
}

// loadForCompletion uses the process cache for file specs; raw specs
// parse directly.
func loadForCompletion(in *specInput) (*spec.Document, error) {
	if in.raw != "" {
		return spec.Parse("<spec>", []byte(in.raw))
	}
	doc, _, err := specCache.Load(in.file)
	return doc, err
}
