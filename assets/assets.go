// Package assets loads icons, bitmaps and fonts for the panel.
//
// Images in PNG, GIF or BMP format are converted to 4-bit gray levels; transparent
// pixels become level 0, which icons treat as see-through.
package assets

import (
	"fmt"
	"image"
	_ "image/gif" // GIF decoder
	_ "image/png" // PNG decoder

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/BeatGlow/ssd1322/draw"
	"github.com/BeatGlow/ssd1322/pixel"
)

// LoadIcon reads an image file as an icon.
func LoadIcon(fs afero.Fs, name string) (*draw.Icon, error) {
	img, err := decode(fs, name)
	if err != nil {
		return nil, err
	}
	gray := Gray4(img)
	return &draw.Icon{
		Width:  gray.Rect.Dx(),
		Height: gray.Rect.Dy(),
		Pix:    gray.Pix,
	}, nil
}

// LoadIconFit reads an image file as an icon, scaled down to fit within w by h pixels
// while keeping its aspect ratio. Smaller images are left as is.
func LoadIconFit(fs afero.Fs, name string, w, h int) (*draw.Icon, error) {
	img, err := decode(fs, name)
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: invalid icon size %dx%d", w, h)
	}
	gray := Gray4(imaging.Fit(img, w, h, imaging.Lanczos))
	return &draw.Icon{
		Width:  gray.Rect.Dx(),
		Height: gray.Rect.Dy(),
		Pix:    gray.Pix,
	}, nil
}

// LoadBitmap reads an image file as a packed 4-bit per pixel bitmap of w by h pixels.
func LoadBitmap(fs afero.Fs, name string) (pix []byte, w, h int, err error) {
	img, err := decode(fs, name)
	if err != nil {
		return nil, 0, 0, err
	}
	gray := Gray4(img)
	return gray.Pix, gray.Rect.Dx(), gray.Rect.Dy(), nil
}

// LoadTrueType reads a TrueType font file.
func LoadTrueType(fs afero.Fs, name string) (*truetype.Font, error) {
	b, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	return f, nil
}

// Gray4 converts img to a 4-bit gray scale image anchored at the origin.
func Gray4(img image.Image) *pixel.Gray4Image {
	b := img.Bounds()
	gray := pixel.NewGray4Image(b.Dx(), b.Dy())
	draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
	return gray
}

func decode(fs afero.Fs, name string) (image.Image, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	return img, nil
}
