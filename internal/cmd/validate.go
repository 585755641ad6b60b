package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clispec/internal/model"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	var in specInput

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse and validate a spec without generating anything",
		Long: `validate loads the spec, resolves its includes and runs every model
validation eagerly, so one invocation reports all problems: duplicate
flag triggers, bad argument arity, malformed completion providers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := in.load()
			if err != nil {
				return err
			}

			count := 0
			m.Walk(func(_ *model.Command) { count++ })
			fmt.Fprintf(cmd.OutOrStdout(), "spec is valid: %d commands\n", count)
			return nil
		},
	}

	addSpecFlags(cmd, &in)
	return cmd
}
