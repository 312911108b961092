package draw

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Text draws text with its pen starting at pt on the baseline and returns the pen
// position after the last glyph.
//
// Every glyph is magnified to size by size pixel blocks; a size below 1 draws at 1.
// Runes the font has no glyph for are skipped and do not move the pen.
func Text(dst Image, pt image.Point, text string, font tinyfont.Fonter, size int, c color.Color) image.Point {
	if font == nil {
		return pt
	}
	if size < 1 {
		size = 1
	}
	d := &scaled{
		set:  plotter(dst, c),
		size: size,
		max:  dst.Bounds().Max,
	}
	for _, r := range text {
		glyph := font.GetGlyph(r)
		if glyph == nil {
			continue
		}
		info := glyph.Info()
		if missing(r, info) {
			continue
		}
		d.pen = pt
		glyph.Draw(d, 0, 0, color.RGBA{A: 0xff})

		advance := int(info.XAdvance)
		if advance == 0 {
			advance = int(info.Width)
		}
		pt.X += advance * size
	}
	return pt
}

// TextWidth is the horizontal advance of text at the given size.
func TextWidth(text string, font tinyfont.Fonter, size int) int {
	if font == nil {
		return 0
	}
	if size < 1 {
		size = 1
	}
	var w int
	for _, r := range text {
		glyph := font.GetGlyph(r)
		if glyph == nil {
			continue
		}
		info := glyph.Info()
		if missing(r, info) {
			continue
		}
		if info.XAdvance != 0 {
			w += int(info.XAdvance) * size
		} else {
			w += int(info.Width) * size
		}
	}
	return w
}

func missing(r rune, info tinyfont.GlyphInfo) bool {
	return info.Rune != r || (info.Width == 0 && info.XAdvance == 0)
}

// scaled is a drivers.Displayer that magnifies glyph pixels drawn relative to pen.
type scaled struct {
	set  func(x, y int)
	size int
	pen  image.Point
	max  image.Point
}

func (d *scaled) Size() (x, y int16) {
	return int16(min(d.max.X, math.MaxInt16)), int16(min(d.max.Y, math.MaxInt16))
}

func (d *scaled) SetPixel(x, y int16, _ color.RGBA) {
	var (
		x0 = d.pen.X + int(x)*d.size
		y0 = d.pen.Y + int(y)*d.size
	)
	for dy := 0; dy < d.size; dy++ {
		for dx := 0; dx < d.size; dx++ {
			d.set(x0+dx, y0+dy)
		}
	}
}

func (d *scaled) Display() error {
	return nil
}

// FaceFont adapts a font.Face, such as basicfont.Face7x13, to a glyph source for Text.
//
// Glyph pixels with a coverage of at least one half are drawn.
func FaceFont(face font.Face) tinyfont.Fonter {
	return faceFont{face: face}
}

type faceFont struct {
	face font.Face
}

func (f faceFont) GetGlyph(r rune) tinyfont.Glypher {
	dr, _, _, advance, ok := f.face.Glyph(fixed.P(0, 0), r)
	if !ok {
		return faceGlyph{}
	}
	return faceGlyph{
		face: f.face,
		info: tinyfont.GlyphInfo{
			Rune:     r,
			Width:    clampUint8(dr.Dx()),
			Height:   clampUint8(dr.Dy()),
			XAdvance: clampUint8(advance.Round()),
			XOffset:  clampInt8(dr.Min.X),
			YOffset:  clampInt8(dr.Min.Y),
		},
	}
}

func (f faceFont) GetYAdvance() uint8 {
	return clampUint8(f.face.Metrics().Height.Round())
}

type faceGlyph struct {
	face font.Face
	info tinyfont.GlyphInfo
}

func (g faceGlyph) Info() tinyfont.GlyphInfo {
	return g.info
}

func (g faceGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.face == nil {
		return
	}
	// The face may reuse its mask between calls, so look the glyph up again.
	dr, mask, maskp, _, ok := g.face.Glyph(fixed.P(0, 0), g.info.Rune)
	if !ok || mask == nil {
		return
	}
	for j := 0; j < dr.Dy(); j++ {
		for i := 0; i < dr.Dx(); i++ {
			_, _, _, a := mask.At(maskp.X+i, maskp.Y+j).RGBA()
			if a >= 0x8000 {
				display.SetPixel(x+int16(dr.Min.X+i), y+int16(dr.Min.Y+j), c)
			}
		}
	}
}

func clampUint8(v int) uint8 {
	return uint8(max(0, min(v, math.MaxUint8)))
}

func clampInt8(v int) int8 {
	return int8(max(math.MinInt8, min(v, math.MaxInt8)))
}
