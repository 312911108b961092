package pixel

import "image/color"

// Gray4Model converts any color to a Gray4.
var Gray4Model color.Model = color.ModelFunc(gray4Model)

// Intensity extremes.
var (
	Off = Gray4{Y: 0x0}
	On  = Gray4{Y: 0xf}
)

// Gray4 represents a 4-bit grayscale intensity. Only the low nibble of Y is used.
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xf * 0x1111 = 0xffff
	y := uint32(c.Y&0xf) * 0x1111
	return y, y, y, 0xffff
}

func gray4Model(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return Gray4{Y: g.Y & 0xf}
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// ToGray4 converts c to a Gray4.
func ToGray4(c color.Color) Gray4 {
	return gray4Model(c).(Gray4)
}
