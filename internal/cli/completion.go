package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Cobra ships the
// generators for all four shells; the command just dispatches.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for toric and print it to stdout.

Load it into the current shell:

  $ source <(toric completion bash)
  $ toric completion fish | source

or install it permanently:

  $ toric completion bash > /etc/bash_completion.d/toric
  $ toric completion zsh > "${fpath[1]}/_toric"
  $ toric completion fish > ~/.config/fish/completions/toric.fish
  PS> toric completion powershell > toric.ps1
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
