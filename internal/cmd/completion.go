package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script for clispec itself",
	Long: `To load completions:

Bash:
  $ source <(clispec completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ clispec completion bash > /etc/bash_completion.d/clispec
  # macOS:
  $ clispec completion bash > $(brew --prefix)/etc/bash_completion.d/clispec

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ clispec completion zsh > "${fpath[1]}/_clispec"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ clispec completion fish | source

  # To load completions for each session, execute once:
  $ clispec completion fish > ~/.config/fish/completions/clispec.fish

PowerShell:
  PS> clispec completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> clispec completion powershell > clispec.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		return rootCmd.GenZshCompletion(os.Stdout)
	case "fish":
		return rootCmd.GenFishCompletion(os.Stdout, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
	}
	return nil
}
