package sprite

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// newCanvas allocates a fully transparent sprite canvas
func newCanvas(l Layout) *image.NRGBA {
	return imaging.New(l.Width, l.Height, color.NRGBA{})
}

// composite draws src over dst in the slot reserved for rec. Source alpha is
// respected; pixels outside the source keep the canvas transparency.
func composite(dst xdraw.Image, src image.Image, rec ImageRecord) {
	slot := image.Rect(rec.X, 0, rec.X+rec.Width, rec.Height)
	xdraw.Draw(dst, slot, src, src.Bounds().Min, xdraw.Over)
}
