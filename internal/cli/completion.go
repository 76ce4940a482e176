package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cfggen.

Bash:
  $ source <(cfggen completion bash)
  $ cfggen completion bash > /etc/bash_completion.d/cfggen

Zsh (with compinit enabled):
  $ cfggen completion zsh > "${fpath[1]}/_cfggen"

Fish:
  $ cfggen completion fish > ~/.config/fish/completions/cfggen.fish

PowerShell:
  PS> cfggen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeGrammarFiles offers .toml and .json files for the grammar argument.
func completeGrammarFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// fixedCompletion offers a fixed set of flag values.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerGenerateCompletions wires value completion for the generate flags.
func registerGenerateCompletions(cmd *cobra.Command) {
	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}
	cmd.ValidArgsFunction = completeGrammarFiles
	_ = cmd.RegisterFlagCompletionFunc("repetition", fixedCompletion("disabled", "enabled", "counted"))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(formats...))
}
