package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clispec/internal/log"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "clispec",
	Short: "CLI-interface spec compiler",
	Long: `clispec compiles a declarative description of a command-line tool into
the artifacts that complete and document it: shell completion scripts
(bash, zsh, fish), a Fig declarative spec, and help/markdown/manpage
documentation. It also answers single completion queries directly via
'clispec complete-word', for integrations without a static script
mechanism.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := log.DefaultConfig()
		cfg.Level = log.ParseLevel(logLevel)
		cfg.Format = log.ParseFormat(logFormat)
		log.SetDefaultLogger(log.New(cfg))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}
