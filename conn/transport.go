// Package conn implements the command/data framed transport to the panel controller.
//
// The controller is attached to a write-only SPI bus. A separate data/command (DC) line
// selects whether a transfer is a command byte (low) or data (high) and a reset line
// (RST) resets the controller. Multi step sequences hold the bus through [Transport.Exclusive].
package conn

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/ssd1322/internal/syncutil"
)

// Transport errors.
var (
	ErrResetPin = errors.New("conn: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("conn: data/command (DC) GPIO pin is invalid")
	ErrReleased = errors.New("conn: bus session used after release")
	ErrSpeed    = errors.New("conn: invalid SPI speed")
)

// Bus is a session on the exclusively held bus.
type Bus interface {
	// Command sends a single command byte with DC low.
	Command(byte) error

	// Data sends data bytes with DC high, as one transaction.
	Data(...byte) error
}

// Transport frames commands and data on a SPI connection.
type Transport struct {
	mu        syncutil.Mutex
	c         conn.Conn
	dc        gpio.PinOut
	reset     gpio.PinOut
	port      io.Closer
	batchSize int
	log       zerolog.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger used for transfer diagnostics.
func WithLogger(log *zerolog.Logger) Option {
	return func(t *Transport) {
		if log != nil {
			t.log = log.With().Str("component", "conn").Logger()
		}
	}
}

// WithBatchSize limits the size of a single transfer. Larger data blocks are split
// into packets that keep chip select asserted.
func WithBatchSize(size int) Option {
	return func(t *Transport) {
		t.batchSize = size
	}
}

// withPort makes the transport close port on Close.
func withPort(port io.Closer) Option {
	return func(t *Transport) {
		t.port = port
	}
}

// New creates a transport on c using the dc and reset pins.
func New(c conn.Conn, dc, reset gpio.PinOut, opts ...Option) (*Transport, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCPin
	}
	if reset == nil || reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	t := &Transport{
		c:     c,
		dc:    dc,
		reset: reset,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Transport) String() string {
	return fmt.Sprintf("%s dc=%s reset=%s", t.c, t.dc, t.reset)
}

// Configure drives DC low and RST high, leaving the controller out of reset in command mode.
func (t *Transport) Configure() error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("conn: configure DC pin %s: %w", t.dc, err)
	}
	if err := t.reset.Out(gpio.High); err != nil {
		return fmt.Errorf("conn: configure reset pin %s: %w", t.reset, err)
	}
	return nil
}

// Reset drives the reset line to level.
func (t *Transport) Reset(level gpio.Level) error {
	if err := t.reset.Out(level); err != nil {
		return fmt.Errorf("conn: reset %s: %w", level, err)
	}
	t.log.Debug().Stringer("level", level).Msg("reset")
	return nil
}

// Exclusive runs fn while holding the bus. The bus is released when fn returns or panics,
// after which the session passed to fn is no longer usable.
func (t *Transport) Exclusive(fn func(Bus) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &session{t: t}
	defer s.released.Store(true)

	return fn(s)
}

// Close the transport, closing the SPI port if it was opened by [Open].
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	return t.port.Close()
}

func (t *Transport) command(b byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("conn: command %#02x: DC: %w", b, err)
	}
	if err := t.c.Tx([]byte{b}, nil); err != nil {
		return fmt.Errorf("conn: command %#02x: %w", b, err)
	}
	return nil
}

func (t *Transport) data(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := t.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("conn: data: DC: %w", err)
	}
	if err := t.write(p); err != nil {
		return fmt.Errorf("conn: data of %d bytes: %w", len(p), err)
	}
	return nil
}

// maxTxSize is the largest single transfer, or 0 if unlimited.
func (t *Transport) maxTxSize() int {
	size := t.batchSize
	if l, ok := t.c.(conn.Limits); ok {
		if limit := l.MaxTxSize(); limit > 0 && (size <= 0 || limit < size) {
			size = limit
		}
	}
	return size
}

func (t *Transport) write(p []byte) error {
	size := t.maxTxSize()
	s, ok := t.c.(spi.Conn)
	if size <= 0 || len(p) <= size || !ok {
		return t.c.Tx(p, nil)
	}

	packets := make([]spi.Packet, 0, (len(p)+size-1)/size)
	for len(p) > 0 {
		n := min(len(p), size)
		packets = append(packets, spi.Packet{W: p[:n], KeepCS: n < len(p)})
		p = p[n:]
	}
	t.log.Debug().Int("packets", len(packets)).Int("size", size).Msg("chunked write")
	return s.TxPackets(packets)
}

type session struct {
	t        *Transport
	released atomic.Bool
}

func (s *session) Command(b byte) error {
	if s.released.Load() {
		return ErrReleased
	}
	return s.t.command(b)
}

func (s *session) Data(p ...byte) error {
	if s.released.Load() {
		return ErrReleased
	}
	return s.t.data(p)
}
