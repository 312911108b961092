package draw

import (
	"image"
	"image/color"

	"github.com/BeatGlow/ssd1322/pixel"
)

// Icon is a 4-bit per pixel image asset, packed like the framebuffer.
//
// Icons are drawn as a mask: every non-zero pixel is plotted in the drawing color
// and zero pixels are left transparent.
type Icon struct {
	Width  int
	Height int
	Pix    []byte
}

// Bounds of the icon, anchored at the origin.
func (i *Icon) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.Width, i.Height)
}

// Bitmap copies a packed 4-bit per pixel image of w by h pixels to dst with its top left
// corner at pt. Pixels landing outside of dst are dropped, as are pixels missing from a
// short pix slice.
func Bitmap(dst Image, pt image.Point, pix []byte, w, h int) {
	if img, ok := dst.(*pixel.Gray4Image); ok {
		blit(pix, w, h, func(x, y int, v uint8) {
			img.SetGray4(pt.X+x, pt.Y+y, pixel.Gray4{Y: v})
		})
		return
	}
	r := dst.Bounds()
	blit(pix, w, h, func(x, y int, v uint8) {
		if p := pt.Add(image.Pt(x, y)); p.In(r) {
			dst.Set(p.X, p.Y, pixel.Gray4{Y: v})
		}
	})
}

// DrawIcon draws icon with its top left corner at pt in color c.
func DrawIcon(dst Image, pt image.Point, icon *Icon, c color.Color) {
	if icon == nil {
		return
	}
	set := plotter(dst, c)
	blit(icon.Pix, icon.Width, icon.Height, func(x, y int, v uint8) {
		if v != 0 {
			set(pt.X+x, pt.Y+y)
		}
	})
}

// blit walks a packed 4-bit source, high nibble first.
func blit(pix []byte, w, h int, fn func(x, y int, v uint8)) {
	if w <= 0 || h <= 0 {
		return
	}
	stride := pixel.Gray4Stride(w)
	for y := 0; y < h; y++ {
		row := y * stride
		if row >= len(pix) {
			return
		}
		for x := 0; x < w; x++ {
			index := row + x>>1
			if index >= len(pix) {
				return
			}
			fn(x, y, (pix[index]>>(4*(1-x&1)))&0xf)
		}
	}
}
