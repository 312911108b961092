package ssd1322

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/BeatGlow/ssd1322/pixel"
)

// Panel dimensions.
const (
	Width  = 256
	Height = 64

	// FrameSize is the number of bytes in one full frame.
	FrameSize = Width * Height / 2

	// ramColumns is the number of pixel columns in the controller RAM, the panel is centered.
	ramColumns = 480
)

// Config is the panel configuration. The zero value uses the defaults.
type Config struct {
	// Contrast current, 0 keeps the maximum (0xff).
	Contrast uint8

	// Clock used for the reset and power up delays.
	Clock clockwork.Clock

	// Logger for panel events, nil disables logging.
	Logger *zerolog.Logger

	// Alloc obtains the framebuffer memory.
	Alloc pixel.Allocator
}
