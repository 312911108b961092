package main

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/ssd1322/draw"
	"github.com/BeatGlow/ssd1322/pixel"
)

type scene struct {
	icon     *draw.Icon
	font     *truetype.Font
	fontSize float64
	glyphs   tinyfont.Fonter
}

func newScene(icon *draw.Icon, font *truetype.Font, fontSize float64) *scene {
	return &scene{
		icon:     icon,
		font:     font,
		fontSize: fontSize,
		glyphs:   draw.FaceFont(basicfont.Face7x13),
	}
}

// render draws frame n of the demo animation.
func (s *scene) render(dst *pixel.Gray4Image, n int) error {
	var (
		r = dst.Bounds()
		w = r.Dx()
		h = r.Dy()
	)
	dst.Clear()

	// Border
	draw.RoundedRectangle(dst, r, 4, pixel.On)

	// Gray scale ramp
	for level := 0; level < 16; level++ {
		x := 4 + level*6
		draw.Box(dst, image.Rect(x, h-10, x+6, h-4), pixel.Gray4{Y: uint8(level)})
	}

	// Sweeping line and bouncing ball
	sweep := n % w
	draw.Line(dst, image.Pt(sweep, 1), image.Pt(w-1-sweep, h-2), pixel.Gray4{Y: 6})
	var (
		period = 2 * (h - 16)
		y      = n % period
	)
	if y > period/2 {
		y = period - y
	}
	draw.Disc(dst, image.Pt(w-24, 8+y), 6, pixel.Gray4{Y: 12})
	draw.Circle(dst, image.Pt(w-24, 8+y), 8, pixel.On)

	text := fmt.Sprintf("frame %d", n)
	if s.font != nil {
		if _, err := draw.TrueType(dst, s.font, s.fontSize, image.Pt(8, 20), text, pixel.On); err != nil {
			return err
		}
	} else {
		draw.Text(dst, image.Pt(8, 20), text, s.glyphs, 1, pixel.On)
	}

	if s.icon != nil {
		pt := image.Pt(w-48-s.icon.Width, (h-s.icon.Height)/2)
		draw.DrawIcon(dst, pt, s.icon, pixel.Gray4{Y: uint8(8 + n%8)})
	}
	return nil
}
