package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:         "completion [bash|zsh|fish|powershell]",
	Short:       "Generate shell completion scripts",
	Long:        `Generate shell completion scripts for cssprite commands and flags.`,
	ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
	Args:        cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}
