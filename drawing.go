package ssd1322

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/ssd1322/draw"
)

// DrawPixel sets one framebuffer pixel.
func (p *Panel) DrawPixel(x, y int, c color.Color) {
	if p.buf != nil {
		draw.Pixel(p.buf, x, y, c)
	}
}

// DrawLine draws a line from a to b, both inclusive.
func (p *Panel) DrawLine(a, b image.Point, c color.Color) {
	if p.buf != nil {
		draw.Line(p.buf, a, b, c)
	}
}

// DrawRect draws the outline of r, or a filled box if fill is set.
func (p *Panel) DrawRect(r image.Rectangle, fill bool, c color.Color) {
	if p.buf == nil {
		return
	}
	if fill {
		draw.Box(p.buf, r, c)
	} else {
		draw.Rectangle(p.buf, r, c)
	}
}

// DrawTriangle draws the triangle a, b, q, or a filled one if fill is set.
func (p *Panel) DrawTriangle(a, b, q image.Point, fill bool, c color.Color) {
	if p.buf == nil {
		return
	}
	if fill {
		draw.FilledTriangle(p.buf, a, b, q, c)
	} else {
		draw.Triangle(p.buf, a, b, q, c)
	}
}

// DrawCircle draws a circle, or a disc if fill is set.
func (p *Panel) DrawCircle(center image.Point, radius int, fill bool, c color.Color) {
	if p.buf == nil {
		return
	}
	if fill {
		draw.Disc(p.buf, center, radius, c)
	} else {
		draw.Circle(p.buf, center, radius, c)
	}
}

// DrawBitmap copies a packed 4-bit per pixel image of w by h pixels to pt.
func (p *Panel) DrawBitmap(pt image.Point, pix []byte, w, h int) {
	if p.buf != nil {
		draw.Bitmap(p.buf, pt, pix, w, h)
	}
}

// DrawText draws text at size with the pen on the baseline at pt and returns the pen
// position after the text.
func (p *Panel) DrawText(pt image.Point, text string, font tinyfont.Fonter, size int, c color.Color) image.Point {
	if p.buf == nil {
		return pt
	}
	return draw.Text(p.buf, pt, text, font, size, c)
}

// DrawIcon draws icon in color c with its top left corner at pt.
func (p *Panel) DrawIcon(pt image.Point, icon *draw.Icon, c color.Color) {
	if p.buf != nil {
		draw.DrawIcon(p.buf, pt, icon, c)
	}
}

// Size is the display size in pixels.
func (p *Panel) Size() (x, y int16) {
	return Width, Height
}

// SetPixel sets a framebuffer pixel, for use with tinygo drawing packages.
func (p *Panel) SetPixel(x, y int16, c color.RGBA) {
	p.DrawPixel(int(x), int(y), c)
}

// Display sends the framebuffer to the display, see [Panel.Update].
func (p *Panel) Display() error {
	return p.Update()
}

// Interface checks
var (
	_ drivers.Displayer = (*Panel)(nil)
	_ draw.Image        = (*Panel)(nil)
)
