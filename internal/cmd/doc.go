package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clispec/internal/docs"
	"github.com/felixgeelhaar/clispec/internal/errors"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Render documentation for a spec",
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(newDocMarkdownCmd())
	docCmd.AddCommand(newDocManCmd())
	docCmd.AddCommand(newDocHelpCmd())
}

func newDocMarkdownCmd() *cobra.Command {
	var in specInput
	var out string

	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Render the command tree as markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}
			return writeDoc(cmd, out, docs.Markdown(m))
		},
	}

	addSpecFlags(cmd, &in)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write here instead of stdout")
	return cmd
}

func newDocManCmd() *cobra.Command {
	var in specInput
	var out string
	var section int

	cmd := &cobra.Command{
		Use:   "man",
		Short: "Render the command tree as a manpage",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}
			return writeDoc(cmd, out, docs.Man(m, section, time.Now()))
		},
	}

	addSpecFlags(cmd, &in)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write here instead of stdout")
	cmd.Flags().IntVar(&section, "section", 1, "manual section")
	return cmd
}

func newDocHelpCmd() *cobra.Command {
	var in specInput

	cmd := &cobra.Command{
		Use:   "help [command path...]",
		Short: "Render terminal help for a command in the spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}
			text, err := docs.Help(m, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	addSpecFlags(cmd, &in)
	return cmd
}

func writeDoc(cmd *cobra.Command, out, content string) error {
	if out == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(out, []byte(content), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write documentation "+out, err)
	}
	return nil
}
