// Package preview prints a sprite sheet to the terminal.
//
// Terminals that speak an inline graphics protocol (kitty, iTerm2/WezTerm,
// sixel) get the real image; everything else gets 24-bit colored half
// blocks, two pixels per cell.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/nfnt/resize"
	"golang.org/x/term"
)

// Mode selects the rendering protocol
type Mode string

// Rendering modes
const (
	ModeAuto  Mode = "auto"
	ModeKitty Mode = "kitty"
	ModeITerm Mode = "iterm"
	ModeSixel Mode = "sixel"
	ModeANSI  Mode = "ansi"
)

// ErrUnsupportedTerminal is returned in auto mode when the output is not a terminal
var ErrUnsupportedTerminal = errors.New("output is not a terminal, pick a preview mode explicitly")

// Options controls how an image is printed
type Options struct {
	Mode     Mode
	MaxWidth int // Cells in ansi mode, pixels otherwise; 0 = terminal width in ansi mode, no limit otherwise
	Colors   int // Sixel palette size (default: 64)
}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeKitty, ModeITerm, ModeSixel, ModeANSI:
		return m, nil
	default:
		return "", fmt.Errorf("unknown preview mode %q (want auto, kitty, iterm, sixel or ansi)", s)
	}
}

// Print writes img to w using the configured mode
func Print(w io.Writer, img image.Image, opts Options) error {
	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return ErrUnsupportedTerminal
		}
		mode = detect()
	}

	switch mode {
	case ModeKitty:
		img = limit(img, opts.MaxWidth)
		if err := (rasterm.Settings{}).KittyWriteImage(w, img); err != nil {
			return err
		}
	case ModeITerm:
		img = limit(img, opts.MaxWidth)
		if err := (rasterm.Settings{}).ItermWriteImage(w, img); err != nil {
			return err
		}
	case ModeSixel:
		img = limit(img, opts.MaxWidth)
		if err := (rasterm.Settings{}).SixelWriteImage(w, quantize(img, opts.Colors)); err != nil {
			return err
		}
	case ModeANSI:
		width := opts.MaxWidth
		if width == 0 {
			width = terminalWidth(w)
		}
		return PrintANSI(w, limit(img, width))
	default:
		return fmt.Errorf("unknown preview mode %q", mode)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// detect picks the best protocol the terminal announces
func detect() Mode {
	switch {
	case rasterm.IsTermKitty():
		return ModeKitty
	case rasterm.IsTermItermWez():
		return ModeITerm
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		return ModeSixel
	}
	return ModeANSI
}

// limit downscales img to at most maxWidth pixels wide, keeping the aspect ratio
func limit(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(img.Bounds().Dy()), img, resize.Lanczos3)
}

// quantize reduces img to a palette for sixel output
func quantize(img image.Image, colors int) *image.Paletted {
	if colors <= 0 {
		colors = 64
	}
	paletted := image.NewPaletted(img.Bounds(), nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: colors}
	quantizer.Quantize(paletted, img.Bounds(), img, img.Bounds().Min)
	return paletted
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// PrintANSI draws img with upper half blocks: the foreground color is the
// upper pixel, the background color the lower one. Fully transparent pixels
// keep the terminal background.
func PrintANSI(w io.Writer, img image.Image) error {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := pixel(img, x, y)
			bottom := color.NRGBA{}
			if y+1 < b.Max.Y {
				bottom = pixel(img, x, y+1)
			}
			cell(&sb, top, bottom)
		}
		sb.WriteString("\x1b[0m\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func pixel(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func cell(sb *strings.Builder, top, bottom color.NRGBA) {
	switch {
	case top.A == 0 && bottom.A == 0:
		sb.WriteString("\x1b[0m ")
	case bottom.A == 0:
		fmt.Fprintf(sb, "\x1b[0m\x1b[38;2;%d;%d;%dm▀", top.R, top.G, top.B)
	case top.A == 0:
		fmt.Fprintf(sb, "\x1b[0m\x1b[38;2;%d;%d;%dm▄", bottom.R, bottom.G, bottom.B)
	default:
		fmt.Fprintf(sb, "\x1b[38;2;%d;%d;%d;48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
	}
}
