package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clispec/internal/errors"
	"github.com/felixgeelhaar/clispec/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a static completion script for a target shell",
}

func init() {
	rootCmd.AddCommand(generateCmd)

	for _, kind := range generate.Kinds {
		generateCmd.AddCommand(newGenerateTargetCmd(kind))
	}
	generateCmd.AddCommand(newGenerateAllCmd())
}

func newGenerateTargetCmd(kind generate.ShellKind) *cobra.Command {
	var in specInput
	var out string

	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Generate the %s completion artifact", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}

			script, err := generate.Emit(m, kind, generateOptions(&in))
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), script)
				return nil
			}
			if err := os.WriteFile(out, []byte(script), 0644); err != nil {
				return errors.Wrap(errors.ErrCodeFileWriteFailed, "write completion script "+out, err)
			}
			return nil
		},
	}

	addSpecFlags(cmd, &in)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the script here instead of stdout")
	return cmd
}

// newGenerateAllCmd emits every target into a directory, concurrently:
// the model is read-only after build, so the emitters need no
// coordination.
func newGenerateAllCmd() *cobra.Command {
	var in specInput
	var dir string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Generate every completion artifact into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}

			scripts, err := generate.EmitAll(cmd.Context(), m, generateOptions(&in))
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrap(errors.ErrCodeFileWriteFailed, "create output directory "+dir, err)
			}
			name := m.RootCommand().Name
			for kind, script := range scripts {
				path := filepath.Join(dir, name+kind.Ext())
				if err := os.WriteFile(path, []byte(script), 0644); err != nil {
					return errors.Wrap(errors.ErrCodeFileWriteFailed, "write completion script "+path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	addSpecFlags(cmd, &in)
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

// generateOptions bakes the spec file into the emitted scripts so their
// dynamic providers can delegate back to complete-word. Raw inline
// specs have no stable path, so delegation is disabled for them.
func generateOptions(in *specInput) generate.Options {
	if in.file == "" {
		return generate.Options{}
	}
	abs, err := filepath.Abs(in.file)
	if err != nil {
		abs = in.file
	}
	return generate.Options{SpecFile: abs}
}

func addSpecFlags(cmd *cobra.Command, in *specInput) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "spec file path")
	cmd.Flags().StringVarP(&in.raw, "spec", "s", "", "raw spec input")
	cmd.MarkFlagsOneRequired("file", "spec")
	cmd.MarkFlagsMutuallyExclusive("file", "spec")
}
