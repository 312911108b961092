package ssd1322

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1322/conn"
	"github.com/BeatGlow/ssd1322/pixel"
)

// Power up timing.
const (
	resetLowDelay  = 100 * time.Millisecond
	resetHighDelay = 500 * time.Millisecond
	settleDelay    = 100 * time.Millisecond
	displayOnDelay = 500 * time.Millisecond
)

// maxGrayLevel is the highest pulse width accepted in a gray scale table.
const maxGrayLevel = 180

// State of the panel.
type State int32

// Panel states.
const (
	Uninitialized State = iota
	Resetting
	Configuring
	Ready

	// Failed is terminal, a new Panel is needed to try again.
	Failed

	// Closed is terminal.
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resetting:
		return "resetting"
	case Configuring:
		return "configuring"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Transport is the connection to the controller, implemented by [conn.Transport].
type Transport interface {
	// Configure the control lines.
	Configure() error

	// Reset drives the reset line.
	Reset(gpio.Level) error

	// Exclusive runs fn while holding the bus.
	Exclusive(fn func(conn.Bus) error) error
}

// Panel is a SSD1322 driven 256x64 OLED panel.
//
// Drawing and Update are not synchronized with each other: use one goroutine that draws
// and flushes, or serialize the calls.
type Panel struct {
	t        Transport
	clock    clockwork.Clock
	log      zerolog.Logger
	alloc    pixel.Allocator
	contrast uint8
	state    atomic.Int32
	buf      *pixel.Gray4Image
}

// New panel on transport t. A nil config uses the defaults.
func New(t Transport, config *Config) *Panel {
	if config == nil {
		config = new(Config)
	}
	p := &Panel{
		t:        t,
		clock:    config.Clock,
		alloc:    config.Alloc,
		contrast: config.Contrast,
		log:      zerolog.Nop(),
	}
	if p.clock == nil {
		p.clock = clockwork.NewRealClock()
	}
	if config.Logger != nil {
		p.log = config.Logger.With().Str("component", "ssd1322").Logger()
	}
	return p
}

func (p *Panel) String() string {
	return fmt.Sprintf("SSD1322 %dx%d", Width, Height)
}

// State returns the current state.
func (p *Panel) State() State {
	return State(p.state.Load())
}

func (p *Panel) setState(s State) {
	p.log.Debug().Stringer("state", s).Msg("state change")
	p.state.Store(int32(s))
}

// Initialize resets and configures the controller, allocates the framebuffer and turns
// the display on. It blocks for about 1.2 seconds.
//
// Any failure leaves the panel in the Failed state.
func (p *Panel) Initialize() (err error) {
	if !p.state.CompareAndSwap(int32(Uninitialized), int32(Resetting)) {
		return fmt.Errorf("%w: initialize while %s", ErrState, p.State())
	}
	defer func() {
		if err != nil {
			p.log.Error().Err(err).Msg("initialization failed")
			p.setState(Failed)
		}
	}()

	if err = p.reset(); err != nil {
		return err
	}

	p.setState(Configuring)
	if err = p.t.Exclusive(p.configure); err != nil {
		return err
	}

	p.setState(Ready)
	return nil
}

func (p *Panel) reset() error {
	if err := p.t.Configure(); err != nil {
		return fmt.Errorf("ssd1322: configure: %w", err)
	}
	if err := p.t.Reset(gpio.Low); err != nil {
		return fmt.Errorf("ssd1322: reset: %w", err)
	}
	p.clock.Sleep(resetLowDelay)
	if err := p.t.Reset(gpio.High); err != nil {
		return fmt.Errorf("ssd1322: reset: %w", err)
	}
	p.clock.Sleep(resetHighDelay)
	return nil
}

func (p *Panel) configure(b conn.Bus) error {
	for _, c := range p.initCommands() {
		if err := c.send(b); err != nil {
			return fmt.Errorf("ssd1322: init %s: %w", c.Op, err)
		}
	}
	p.log.Debug().Int("commands", len(initSequence)).Msg("configured")
	p.clock.Sleep(settleDelay)

	buf, err := pixel.Allocate(Width, Height, p.alloc)
	if err != nil {
		return fmt.Errorf("ssd1322: %w", err)
	}
	buf.Clear()
	p.buf = buf

	if err = p.flush(b); err != nil {
		return fmt.Errorf("ssd1322: first flush: %w", err)
	}
	if err = (Command{Op: SetDisplayOn}).send(b); err != nil {
		return fmt.Errorf("ssd1322: display on: %w", err)
	}
	p.clock.Sleep(displayOnDelay)
	return nil
}

func (p *Panel) initCommands() []Command {
	if p.contrast == 0 {
		return initSequence
	}
	cmds := slices.Clone(initSequence)
	for i, c := range cmds {
		if c.Op == SetContrast {
			cmds[i].Args = []byte{p.contrast}
		}
	}
	return cmds
}

func (p *Panel) flush(b conn.Bus) error {
	if err := b.Command(byte(WriteRAM)); err != nil {
		return err
	}
	p.log.Trace().Int("bytes", len(p.buf.Pix)).Msg("flush")
	return b.Data(p.buf.Pix...)
}

func (p *Panel) ready() error {
	if s := p.State(); s != Ready {
		return fmt.Errorf("%w: %s", ErrNotReady, s)
	}
	return nil
}

// Update sends the framebuffer to the display.
func (p *Panel) Update() error {
	if err := p.ready(); err != nil {
		return err
	}
	if err := p.t.Exclusive(p.flush); err != nil {
		return fmt.Errorf("ssd1322: update: %w", err)
	}
	return nil
}

// Clear the framebuffer. The display changes on the next Update.
func (p *Panel) Clear() {
	if p.buf != nil {
		p.buf.Clear()
	}
}

// Close turns the display off and closes the transport if it is an io.Closer.
func (p *Panel) Close() error {
	prev := p.State()
	if prev == Closed {
		return nil
	}
	var err error
	if prev == Ready {
		err = p.exec(Command{Op: SetDisplayOff})
	}
	p.setState(Closed)
	if c, ok := p.t.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// exec sends commands in one bus session.
func (p *Panel) exec(cmds ...Command) error {
	for _, c := range cmds {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return p.t.Exclusive(func(b conn.Bus) error {
		if err := commands(b, cmds...); err != nil {
			return fmt.Errorf("ssd1322: %w", err)
		}
		return nil
	})
}

// Command sends a raw command, validating its argument count.
func (p *Panel) Command(op Opcode, args ...byte) error {
	if err := p.ready(); err != nil {
		return err
	}
	return p.exec(Command{Op: op, Args: args})
}

// Show toggles the display on or off.
func (p *Panel) Show(show bool) error {
	if err := p.ready(); err != nil {
		return err
	}
	if show {
		return p.exec(Command{Op: SetDisplayOn})
	}
	return p.exec(Command{Op: SetDisplayOff})
}

// SetContrast adjusts the contrast current.
func (p *Panel) SetContrast(level uint8) error {
	if err := p.ready(); err != nil {
		return err
	}
	return p.exec(Command{Op: SetContrast, Args: []byte{level}})
}

// SetMode selects normal, inverse or all on/off display.
func (p *Panel) SetMode(mode Mode) error {
	if err := p.ready(); err != nil {
		return err
	}
	switch mode {
	case ModeNormal, ModeAllOn, ModeAllOff, ModeInverse:
		return p.exec(Command{Op: Opcode(mode)})
	default:
		return fmt.Errorf("%w: %s", ErrCommand, mode)
	}
}

// SetGrayscaleTable loads the pulse widths for gray levels 1 to 15. The levels must be
// ascending and at most 180.
func (p *Panel) SetGrayscaleTable(table [15]byte) error {
	if err := p.ready(); err != nil {
		return err
	}
	for i, v := range table {
		if v > maxGrayLevel {
			return fmt.Errorf("%w: gray level %d is %d, maximum is %d", ErrCommand, i+1, v, maxGrayLevel)
		}
		if i > 0 && v < table[i-1] {
			return fmt.Errorf("%w: gray level %d is lower than level %d", ErrCommand, i+1, i)
		}
	}
	return p.exec(
		Command{Op: SetGrayscaleTable, Args: table[:]},
		Command{Op: EnableGrayscaleTable},
	)
}

// SetWindow sets the column and row address range of the display RAM. Columns address
// 4 pixels, so the horizontal range is widened to a multiple of 4.
//
// Update writes the whole frame, set the window back to Bounds before calling it.
func (p *Panel) SetWindow(r image.Rectangle) error {
	if err := p.ready(); err != nil {
		return err
	}
	if r.Empty() || !r.In(p.Bounds()) {
		return ErrBounds
	}
	var (
		offset   = (ramColumns - Width) / 2
		colStart = (offset + r.Min.X) / 4
		colEnd   = (offset+r.Max.X+3)/4 - 1
	)
	return p.exec(
		Command{Op: SetColumnAddress, Args: []byte{byte(colStart), byte(colEnd)}},
		Command{Op: SetRowAddress, Args: []byte{byte(r.Min.Y), byte(r.Max.Y - 1)}},
	)
}

// Bounds is the display bounding box.
func (p *Panel) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Buffer is the framebuffer, nil before initialization.
func (p *Panel) Buffer() *pixel.Gray4Image {
	return p.buf
}

func (p *Panel) ColorModel() color.Model {
	return pixel.Gray4Model
}

// At returns the framebuffer color at (x, y).
func (p *Panel) At(x, y int) color.Color {
	if p.buf == nil {
		return color.Transparent
	}
	return p.buf.At(x, y)
}

// Set the framebuffer color at (x, y).
func (p *Panel) Set(x, y int, c color.Color) {
	if p.buf != nil {
		p.buf.Set(x, y, c)
	}
}
