package pixel

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropertySetGetRoundTrip verifies a written intensity reads back and the
// pixel sharing the same byte is left alone.
func TestPropertySetGetRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		var (
			i     = NewGray4Image(256, 64)
			x     = rapid.IntRange(0, 255).Draw(t, "x")
			y     = rapid.IntRange(0, 63).Draw(t, "y")
			v     = rapid.Uint8Range(0, 0xf).Draw(t, "v")
			other = rapid.Uint8Range(0, 0xf).Draw(t, "other")
			peer  = x ^ 1
		)
		i.SetGray4(peer, y, Gray4{Y: other})
		i.SetGray4(x, y, Gray4{Y: v})

		if got := i.Gray4At(x, y); got.Y != v {
			t.Fatalf("pixel (%d,%d) is %d, expected %d", x, y, got.Y, v)
		}
		if got := i.Gray4At(peer, y); got.Y != other {
			t.Fatalf("neighbour (%d,%d) is %d, expected %d", peer, y, got.Y, other)
		}
	})
}

// TestPropertyOutOfBounds verifies writes outside the image never touch storage.
func TestPropertyOutOfBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		i := NewGray4Image(256, 64)
		x := rapid.IntRange(-1024, 1024).Filter(func(x int) bool { return x < 0 || x >= 256 }).Draw(t, "x")
		y := rapid.IntRange(-1024, 1024).Draw(t, "y")

		i.SetGray4(x, y, On)
		i.SetGray4(y, x, On)
		for j, b := range i.Pix {
			if b != 0 {
				t.Fatalf("byte %d changed to %#02x", j, b)
			}
		}
		if got := i.Gray4At(x, y); got != Off {
			t.Fatalf("pixel (%d,%d) is %d, expected 0", x, y, got.Y)
		}
	})
}
