package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssprite"
)

// errLintFailed is returned when lint issues should fail the build; main
// only turns it into exit code 1.
var errLintFailed = errors.New("lint failed")

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check sprite class usage in templates",
	Long: `Check that sprite classes used in templates exist in the generated stylesheet.
Reports unknown classes as errors and never referenced classes as warnings.`,
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", []string{"templates/**/*.html"}, "File patterns to scan for class references")
	f.String("css-path", "public/css/sprite.css", "Generated stylesheet")
	f.String("prefix", "", "Class prefix (default: read from the stylesheet)")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (spritelint) suffix on issues")
}

// runLint is shared between `cssprite lint` and `cssprite generate --lint-after`.
func runLint(cmd *cobra.Command, _ []string) error {
	lintConfig := buildLintConfig()
	logger := loggerFromContext(cmd.Context())

	lintResult, err := cssprite.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	logger.Debug("lint finished", "files", lintResult.FilesScanned, "issues", len(lintResult.Issues))

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := cssprite.DetermineOutputFormat(getStringWithFallback("output-format", "lint.output-format", ""))

	if !quiet {
		if err := cssprite.WriteOutput(cmd.OutOrStdout(), lintResult, format, lintConfig); err != nil {
			return err
		}
	}

	// Soft gate: only errors fail the build unless strict
	if lintConfig.Strict && len(lintResult.Issues) > 0 || lintResult.HasErrors() {
		return errLintFailed
	}

	return nil
}
