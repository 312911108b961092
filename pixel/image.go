package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrAllocation is returned when the framebuffer memory can not be obtained.
//
// There is no degraded mode without a framebuffer, callers should treat it as fatal.
var ErrAllocation = errors.New("pixel: framebuffer allocation failed")

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Allocator obtains size bytes of framebuffer memory.
type Allocator func(size int) ([]byte, error)

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

// Gray4Image is a 4-bits per pixel gray scale image.
type Gray4Image struct {
	Buffer
}

// Gray4Stride is the number of bytes in one row of w pixels.
func Gray4Stride(w int) int {
	return (w + 1) / 2
}

func NewGray4Image(w, h int) *Gray4Image {
	p, _ := Allocate(w, h, nil)
	return p
}

// Allocate a cleared Gray4Image of w by h pixels using alloc, or make if alloc is nil.
func Allocate(w, h int, alloc Allocator) (*Gray4Image, error) {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	var (
		stride = Gray4Stride(w)
		size   = stride * h
		pix    []byte
		err    error
	)
	if alloc == nil {
		pix = make([]byte, size)
	} else if pix, err = alloc(size); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrAllocation, size, err)
	} else if len(pix) < size {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrAllocation, len(pix), size)
	}

	p := &Gray4Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    pix[:size],
			Stride: stride,
		},
	}
	p.Clear()
	return p, nil
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

// PixOffset returns the index of the byte holding (x, y) and the shift of its nibble.
func (p *Gray4Image) PixOffset(x, y int) (index int, shift uint) {
	index = y*p.Stride + x>>1
	shift = uint(4 * (1 - x&1))
	return
}

func (p *Gray4Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Gray4At(x, y)
}

// Gray4At returns the intensity at (x, y), or Off outside of the image.
func (p *Gray4Image) Gray4At(x, y int) Gray4 {
	if !(image.Point{x, y}).In(p.Rect) {
		return Off
	}
	index, shift := p.PixOffset(x, y)
	return Gray4{Y: (p.Pix[index] >> shift) & 0xf}
}

func (p *Gray4Image) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, ToGray4(c))
}

// SetGray4 sets the intensity at (x, y), leaving the neighbour in the same byte untouched.
// Coordinates outside of the image are ignored.
func (p *Gray4Image) SetGray4(x, y int, c Gray4) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	index, shift := p.PixOffset(x, y)
	p.Pix[index] = (p.Pix[index] &^ (0xf << shift)) | (c.Y&0xf)<<shift
}

func (p *Gray4Image) Fill(c color.Color) {
	value := ToGray4(c).Y & 0xf
	value |= value << 4
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks.
var (
	_ Image = (*Gray4Image)(nil)
)
