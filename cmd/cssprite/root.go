package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// skipConfig marks commands that must work without a readable config file
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "cssprite",
	Short: "Pack icon images into a CSS sprite",
	Long: `Pack a directory tree of icon images into one sprite image and write
the stylesheet that exposes every icon as a CSS class.
buttons/ok.png becomes .img-buttons-ok; buttons/ok.hover.png is shown on hover.`,
	// Default behavior: run generate when no subcommand is given
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd, nil)
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations[skipConfig] == "" {
			if err := loadConfig(cmd); err != nil {
				return err
			}
		}

		level := log.InfoLevel
		switch {
		case getBoolWithFallback("verbose", "verbose", false):
			level = log.DebugLevel
		case getBoolWithFallback("quiet", "quiet", false):
			level = log.ErrorLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
