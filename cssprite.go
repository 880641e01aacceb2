// Package cssprite packs a directory tree of icon images into one sprite
// sheet and writes the stylesheet that exposes every icon as a CSS class.
//
// # Generation
//
// Pack images/source into a sprite and a stylesheet:
//
//	config := cssprite.Config{
//		SourcePath: "images/source",
//		ImagePath:  "public/img/sprite.png",
//		CSSPath:    "public/css/sprite.css",
//		ImageURL:   "../img/sprite.png",
//	}
//	result, err := cssprite.Generate(config)
//
// Every image becomes a class named after its path below the source
// directory: buttons/ok.png is .img-buttons-ok. An image named
// buttons/ok.hover.png is not a class of its own; it is shown instead of
// buttons/ok.png when the element (or a .wrap-img ancestor) is hovered.
// The same holds for the active and target states.
//
// # Linting
//
// Check templates for sprite classes the stylesheet does not define:
//
//	result, err := cssprite.Lint(cssprite.LintConfig{
//		CSSPath:   "public/css/sprite.css",
//		ScanPaths: []string{"templates/**/*.html"},
//	})
//
// # CLI Tool
//
// cssprite also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssprite/cmd/cssprite@latest
package cssprite

import "github.com/yacobolo/cssprite/internal/sprite"

// Re-exported sprite types so hosts only import this package
type (
	Collection     = sprite.Collection
	Emission       = sprite.Emission
	ImageRecord    = sprite.ImageRecord
	Entry          = sprite.Entry
	Rule           = sprite.Rule
	Declaration    = sprite.Declaration
	Format         = sprite.Format
	NamespaceStyle = sprite.NamespaceStyle
	Order          = sprite.Order
)

// Enumerations
const (
	FormatJPEG = sprite.FormatJPEG
	FormatGIF  = sprite.FormatGIF
	FormatPNG  = sprite.FormatPNG

	StyleHyphen = sprite.StyleHyphen
	StyleConcat = sprite.StyleConcat

	OrderName    = sprite.OrderName
	OrderNatural = sprite.OrderNatural
)
