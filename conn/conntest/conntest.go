// Package conntest provides a recording SPI connection for testing panel traffic.
package conntest

import (
	"bytes"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/ssd1322/internal/syncutil"
)

// IO is one recorded transaction.
type IO struct {
	// DC is the level of the data/command line during the transaction.
	DC gpio.Level

	// W are the bytes written.
	W []byte

	// Packets is the number of packets for a TxPackets transaction, 0 for Tx.
	Packets int

	// KeepCS holds the KeepCS flag of every packet.
	KeepCS []bool
}

// Command reports whether the transaction was a single command byte.
func (io IO) Command() bool {
	return io.DC == gpio.Low && len(io.W) == 1
}

// Recorder is a write-only spi.Conn that records every transaction.
type Recorder struct {
	// DC is sampled on every transaction.
	DC gpio.PinIn

	// Limit is reported as MaxTxSize, 0 means unlimited.
	Limit int

	mu  syncutil.Mutex
	ops []IO
	err error
}

// NewRecorder records transactions, sampling the dc pin.
func NewRecorder(dc gpio.PinIn) *Recorder {
	return &Recorder{DC: dc}
}

// NewPins returns test DC and reset pins.
func NewPins() (dc, reset *gpiotest.Pin) {
	return &gpiotest.Pin{N: "DC", Num: 24}, &gpiotest.Pin{N: "RST", Num: 25}
}

func (r *Recorder) String() string {
	return "conntest"
}

func (r *Recorder) Duplex() conn.Duplex {
	return conn.Half
}

func (r *Recorder) MaxTxSize() int {
	return r.Limit
}

// Fail makes every following transaction return err, nil restores normal operation.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Tx(w, read []byte) error {
	if len(read) != 0 {
		return fmt.Errorf("conntest: read of %d bytes on a write-only bus", len(read))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.ops = append(r.ops, IO{DC: r.level(), W: bytes.Clone(w)})
	return nil
}

func (r *Recorder) TxPackets(packets []spi.Packet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	op := IO{DC: r.level(), Packets: len(packets)}
	for _, p := range packets {
		if len(p.R) != 0 {
			return fmt.Errorf("conntest: read of %d bytes on a write-only bus", len(p.R))
		}
		op.W = append(op.W, p.W...)
		op.KeepCS = append(op.KeepCS, p.KeepCS)
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *Recorder) level() gpio.Level {
	if r.DC == nil {
		return gpio.Low
	}
	return r.DC.Read()
}

// Ops returns a copy of the recorded transactions.
func (r *Recorder) Ops() []IO {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]IO(nil), r.ops...)
}

// Commands returns the command bytes and their arguments, in order, one slice per command.
func (r *Recorder) Commands() [][]byte {
	var out [][]byte
	for _, op := range r.Ops() {
		switch {
		case op.DC == gpio.Low:
			for _, b := range op.W {
				out = append(out, []byte{b})
			}
		case len(out) > 0:
			last := len(out) - 1
			out[last] = append(out[last], op.W...)
		}
	}
	return out
}

// Reset forgets all recorded transactions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// Port is a spi.PortCloser that connects to Recorder.
type Port struct {
	Recorder *Recorder

	// Connected holds the arguments of the last Connect.
	Frequency physic.Frequency
	Mode      spi.Mode
	Bits      int

	Closed bool
}

func (p *Port) String() string {
	return "conntest.Port"
}

func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.Frequency, p.Mode, p.Bits = f, mode, bits
	return p.Recorder, nil
}

func (p *Port) LimitSpeed(f physic.Frequency) error {
	return nil
}

func (p *Port) Close() error {
	p.Closed = true
	return nil
}

// Interface checks.
var (
	_ spi.Conn       = (*Recorder)(nil)
	_ conn.Limits    = (*Recorder)(nil)
	_ spi.PortCloser = (*Port)(nil)
)
