// Package draw contains the drawing primitives for the panel framebuffer.
//
// Every primitive is a pure mutation of the destination image. Coordinates outside of
// the destination are clipped by the pixel setter, so callers never have to
// pre-validate them and no primitive returns a bounds error.
package draw

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/ssd1322/pixel"
)

// Drawer is an alias for [image/draw.Drawer].
type Drawer = draw.Drawer

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for image/draw.Op
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = iota

	// Src specifies ``src in mask''.
	Src
)

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Pixel sets a single pixel.
func Pixel(dst Image, x, y int, c color.Color) {
	plotter(dst, c)(x, y)
}

// plotter returns a clipping pixel setter for a fixed color. Colors are converted
// once for the framebuffer type.
func plotter(dst Image, c color.Color) func(x, y int) {
	if img, ok := dst.(*pixel.Gray4Image); ok {
		v := pixel.ToGray4(c)
		return func(x, y int) {
			img.SetGray4(x, y, v)
		}
	}
	r := dst.Bounds()
	return func(x, y int) {
		if (image.Point{x, y}).In(r) {
			dst.Set(x, y, c)
		}
	}
}
