package draw

import (
	"image"
	"testing"

	"pgregory.net/rapid"

	"github.com/BeatGlow/ssd1322/pixel"
)

func drawPoint(t *rapid.T, name string) image.Point {
	return image.Pt(
		rapid.IntRange(-32, 287).Draw(t, name+".x"),
		rapid.IntRange(-32, 95).Draw(t, name+".y"),
	)
}

// TestPropertyLineSymmetric verifies both endpoint orders plot the same pixels.
func TestPropertyLineSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			a, b     = drawPoint(t, "a"), drawPoint(t, "b")
			forward  = newTestImage()
			backward = newTestImage()
		)
		Line(forward, a, b, pixel.On)
		Line(backward, b, a, pixel.On)
		for i := range forward.Pix {
			if forward.Pix[i] != backward.Pix[i] {
				t.Fatalf("line %s-%s differs from %s-%s at byte %d", a, b, b, a, i)
			}
		}
	})
}

// TestPropertyLineConnected verifies lines inside the image are 8-connected and
// plot exactly one pixel per step along the major axis.
func TestPropertyLineConnected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			a = image.Pt(rapid.IntRange(0, 255).Draw(t, "ax"), rapid.IntRange(0, 63).Draw(t, "ay"))
			b = image.Pt(rapid.IntRange(0, 255).Draw(t, "bx"), rapid.IntRange(0, 63).Draw(t, "by"))
			i = newTestImage()
		)
		Line(i, a, b, pixel.On)

		var (
			points = lit(i)
			d      = b.Sub(a)
			want   = max(abs(d.X), abs(d.Y)) + 1
		)
		if len(points) != want {
			t.Fatalf("line %s-%s plotted %d pixels, expected %d", a, b, len(points), want)
		}
		if i.Gray4At(a.X, a.Y) != pixel.On || i.Gray4At(b.X, b.Y) != pixel.On {
			t.Fatalf("line %s-%s misses an endpoint", a, b)
		}
		seen := make(map[image.Point]bool, len(points))
		for _, p := range points {
			seen[p] = true
		}
		for _, p := range points {
			if p == a || p == b {
				continue
			}
			var neighbours int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && seen[p.Add(image.Pt(dx, dy))] {
						neighbours++
					}
				}
			}
			if neighbours < 2 {
				t.Fatalf("line %s-%s pixel %s has %d neighbours", a, b, p, neighbours)
			}
		}
	})
}

// TestPropertyClipping verifies no primitive touches memory outside of the framebuffer.
func TestPropertyClipping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			i      = pixel.NewGray4Image(16, 8)
			a, b   = drawPoint(t, "a"), drawPoint(t, "b")
			c      = drawPoint(t, "c")
			radius = rapid.IntRange(-2, 40).Draw(t, "radius")
		)
		i.Pix = append(i.Pix, 0xaa)[:len(i.Pix)]

		Line(i, a, b, pixel.On)
		Rectangle(i, image.Rectangle{Min: a, Max: b}, pixel.On)
		Box(i, image.Rectangle{Min: a, Max: b}, pixel.On)
		Triangle(i, a, b, c, pixel.On)
		FilledTriangle(i, a, b, c, pixel.On)
		Circle(i, c, radius, pixel.On)
		Disc(i, c, radius, pixel.On)
		Bitmap(i, a, testBitmap, 3, 2)

		if guard := i.Pix[:len(i.Pix)+1][len(i.Pix)]; guard != 0xaa {
			t.Fatalf("guard byte changed to %#02x", guard)
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
