package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssprite"
	"github.com/yacobolo/cssprite/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Pack source images into a sprite and write its stylesheet",
	Long: `Scan the source directory for images, lay them out in a single row,
and write the sprite image plus a stylesheet with one class per image.
Files named <name>.<state>.<ext> become :hover/:active/:target variants.`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

// addGenerateFlags registers generation flags; the root command shares them
// because it runs generate by default.
func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source-dir", "images/source", "Directory with the source images")
	f.String("source-ext", "jpg,jpeg,gif,png", "Comma separated source extensions")
	f.Int("skip-size", 0, "Skip images wider or taller than this (0=off)")
	f.String("order", "name", "Directory entry order: name|natural")
	f.String("ignore-file", ".spriteignore", "Gitignore-style file inside the source directory")
	f.String("image-path", "public/img/sprite.png", "Sprite image to write; the extension picks the format")
	f.Int("jpeg-quality", 90, "JPEG quality 1-100")
	f.String("css-path", "public/css/sprite.css", "Stylesheet to write")
	f.String("image-url", "../img/sprite.png", "Sprite URL used in the stylesheet")
	f.String("namespace", "img", "Class prefix")
	f.String("namespace-style", "hyphen", "Prefix style: hyphen (img-ok) | concat (imgok)")
	f.Int("default-size", 64, "Box size of the namespace rule in px")
	f.StringSlice("states", []string{"hover", "active", "target"}, "State suffixes")
	f.String("tag", "i", "Element of the generated tags")
	f.Bool("inline", false, "Embed the sprite into the stylesheet as a data URL")
	f.Bool("cache-bust", false, "Append ?v=<hash> to the sprite URL")
	f.Bool("slug", false, "Transliterate class names: \"Save File\" -> save-file")
	f.Bool("check-fresh", false, "Do nothing when the sprite is newer than every source")
	f.Int("workers", 1, "Parallel image decoders")
	f.String("output-format", "text", "Report format: text|json|tags")
	f.String("demo", "", "Also write an HTML page showing every class")
	f.Bool("lint-after", false, "Run the linter after generation")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	logger := loggerFromContext(cmd.Context())
	config := buildGenerateConfig(logger)

	format, err := cssprite.ParseGenerateFormat(getStringWithFallback("output-format", "output-format", ""))
	if err != nil {
		return err
	}

	result, err := cssprite.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if demo := getStringWithFallback("demo", "demo", ""); demo != "" && !result.UpToDate {
		if err := writeDemo(demo, config.CSSPath, result); err != nil {
			return err
		}
		logger.Debug("wrote demo page", "path", demo)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		useColors := report.ShouldUseColors(getBoolWithFallback("color", "color", false))
		if err := cssprite.WriteGenerateOutput(cmd.OutOrStdout(), result, format, useColors); err != nil {
			return err
		}
	}

	// Run lint after generate if --lint-after flag set
	if getBoolWithFallback("lint-after", "lint-after", false) {
		return runLint(cmd, nil)
	}

	return nil
}

// writeDemo writes the demo page, linking the stylesheet relative to it
func writeDemo(path, cssPath string, result *cssprite.GenerateResult) error {
	href := filepath.Base(cssPath)
	if absDemo, err := filepath.Abs(filepath.Dir(path)); err == nil {
		if absCSS, err := filepath.Abs(cssPath); err == nil {
			if rel, err := filepath.Rel(absDemo, absCSS); err == nil {
				href = filepath.ToSlash(rel)
			}
		}
	}

	// #nosec G304 - path comes from configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing demo page: %w", err)
	}
	defer f.Close()

	if err := cssprite.WriteDemo(f, result, href); err != nil {
		return fmt.Errorf("writing demo page: %w", err)
	}
	return f.Close()
}
