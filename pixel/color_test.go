package pixel

import (
	"image/color"
	"testing"
)

func TestGray4(t *testing.T) {
	for y := 0; y < 16; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray4{Y: uint8(y)}
			r, g, b, a := c.RGBA()
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
			if a != 0xffff {
				it.Errorf("expected opaque alpha, got %#04x", a)
			}
		})
	}
}

func TestGray4Model(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Gray4
	}{
		{"black", color.Black, Off},
		{"white", color.White, On},
		{"gray4 passthrough", Gray4{Y: 7}, Gray4{Y: 7}},
		{"gray4 high bits dropped", Gray4{Y: 0xf3}, Gray4{Y: 3}},
		{"gray16 mid", color.Gray16{Y: 0x8888}, Gray4{Y: 8}},
		{"gray8", color.Gray{Y: 0x11}, Gray4{Y: 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := Gray4Model.Convert(test.in); v != test.want {
				it.Errorf("expected %#+v, got %#+v", test.want, v)
			}
		})
	}
}

func TestGray4RoundTrip(t *testing.T) {
	for y := uint8(0); y < 16; y++ {
		c := Gray4{Y: y}
		if v := ToGray4(color.Gray16Model.Convert(c)); v != c {
			t.Errorf("expected %d to survive a Gray16 round trip, got %d", y, v.Y)
		}
	}
}
