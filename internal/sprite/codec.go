package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybons/gogif"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
)

// headerSize is the number of bytes filetype needs to recognize every type it knows
const headerSize = 262

// Codec decodes source images of one format and encodes finished sprites in it
type Codec struct {
	Format Format
	MIME   string
	Decode func(path string) (image.Image, error)
	Encode func(w io.Writer, img image.Image) error
}

// Codecs maps each format to its codec. Sources whose format is missing from
// the table (or has no Decode) are left out of the sprite without an error.
type Codecs map[Format]Codec

// DefaultCodecs returns codecs for every supported format
func DefaultCodecs(jpegQuality int) Codecs {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return Codecs{
		FormatPNG: {
			Format: FormatPNG,
			MIME:   "image/png",
			Decode: decodeImage,
			Encode: func(w io.Writer, img image.Image) error {
				return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
			},
		},
		FormatJPEG: {
			Format: FormatJPEG,
			MIME:   "image/jpeg",
			Decode: decodeImage,
			Encode: func(w io.Writer, img image.Image) error {
				return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
			},
		},
		FormatGIF: {
			Format: FormatGIF,
			MIME:   "image/gif",
			Decode: decodeImage,
			Encode: encodeGIF,
		},
	}
}

// FormatFromPath maps an output path extension to a format.
// Only jpg, jpeg, gif and png are recognized, in any letter case.
func FormatFromPath(p string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(p), ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "gif":
		return FormatGIF, true
	case "png":
		return FormatPNG, true
	}
	return "", false
}

// probeImage reads only the image header: type sniffing and dimensions.
func probeImage(path string) (image.Config, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return image.Config{}, "", err
	}

	format, err := sniffFormat(header[:n])
	if err != nil {
		return image.Config{}, "", err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return image.Config{}, "", err
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Config{}, "", fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, format, nil
}

func sniffFormat(header []byte) (Format, error) {
	kind, err := filetype.Match(header)
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "", errors.New("not an image")
	}

	switch kind.Extension {
	case "jpg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image type %q", kind.MIME.Value)
}

// decodeImage decodes the full pixel data of a source image
func decodeImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

// encodeGIF quantizes the sprite with a median cut palette while keeping
// index 0 fully transparent, so untouched canvas areas stay transparent.
func encodeGIF(w io.Writer, img image.Image) error {
	bounds := img.Bounds()

	pal := image.NewPaletted(bounds, nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // 255 colors plus the transparent slot
	quantizer.Quantize(pal, bounds, img, bounds.Min)

	palette := append(color.Palette{color.Transparent}, pal.Palette...)
	out := image.NewPaletted(bounds, palette)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)

	return gif.Encode(w, out, nil)
}
