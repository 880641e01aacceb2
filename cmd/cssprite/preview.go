package main

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssprite/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the generated sprite in the terminal",
	Long: `Draw the sprite image inline. Kitty, iTerm2/WezTerm and sixel terminals
get the real image; other terminals get colored half blocks.`,
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.String("image-path", "public/img/sprite.png", "Sprite image to show")
	f.String("mode", "auto", "Rendering: auto|kitty|iterm|sixel|ansi")
	f.Int("width", 0, "Maximum width (cells for ansi, pixels otherwise; 0=fit)")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	path := getStringWithFallback("image-path", "image.path", "public/img/sprite.png")

	mode, err := preview.ParseMode(getStringWithFallback("mode", "preview.mode", "auto"))
	if err != nil {
		return err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("opening sprite: %w", err)
	}
	loggerFromContext(cmd.Context()).Debug("previewing", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return preview.Print(cmd.OutOrStdout(), img, preview.Options{
		Mode:     mode,
		MaxWidth: getIntWithFallback("width", "preview.width", 0),
	})
}
