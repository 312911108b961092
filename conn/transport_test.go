package conn

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/ssd1322/conn/conntest"
)

func newTestTransport(t *testing.T, opts ...Option) (*Transport, *conntest.Recorder, *gpiotest.Pin, *gpiotest.Pin) {
	t.Helper()
	dc, reset := conntest.NewPins()
	rec := conntest.NewRecorder(dc)
	tr, err := New(rec, dc, reset, opts...)
	require.NoError(t, err)
	return tr, rec, dc, reset
}

func TestNewInvalidPins(t *testing.T) {
	dc, reset := conntest.NewPins()
	rec := conntest.NewRecorder(dc)

	_, err := New(rec, nil, reset)
	assert.ErrorIs(t, err, ErrDCPin)
	_, err = New(rec, gpio.INVALID, reset)
	assert.ErrorIs(t, err, ErrDCPin)
	_, err = New(rec, dc, nil)
	assert.ErrorIs(t, err, ErrResetPin)
	_, err = New(rec, dc, gpio.INVALID)
	assert.ErrorIs(t, err, ErrResetPin)
}

func TestConfigure(t *testing.T) {
	tr, rec, dc, reset := newTestTransport(t)
	dc.L, reset.L = gpio.High, gpio.Low

	require.NoError(t, tr.Configure())
	assert.Equal(t, gpio.Low, dc.Read())
	assert.Equal(t, gpio.High, reset.Read())
	assert.Empty(t, rec.Ops())

	require.NoError(t, tr.Reset(gpio.Low))
	assert.Equal(t, gpio.Low, reset.Read())
	require.NoError(t, tr.Reset(gpio.High))
	assert.Equal(t, gpio.High, reset.Read())
}

func TestCommandAndData(t *testing.T) {
	tr, rec, dc, _ := newTestTransport(t)

	err := tr.Exclusive(func(b Bus) error {
		dc.L = gpio.High
		if err := b.Command(0xaf); err != nil {
			return err
		}
		if err := b.Data(0x12, 0x34, 0x56); err != nil {
			return err
		}
		if err := b.Data(); err != nil {
			return err
		}
		return b.Command(0xa4)
	})
	require.NoError(t, err)

	assert.Equal(t, []conntest.IO{
		{DC: gpio.Low, W: []byte{0xaf}},
		{DC: gpio.High, W: []byte{0x12, 0x34, 0x56}},
		{DC: gpio.Low, W: []byte{0xa4}},
	}, rec.Ops())
	assert.Equal(t, [][]byte{{0xaf, 0x12, 0x34, 0x56}, {0xa4}}, rec.Commands())
}

func TestDataChunked(t *testing.T) {
	data := bytes.Repeat([]byte{0x5a}, 250)

	t.Run("limit", func(t *testing.T) {
		tr, rec, _, _ := newTestTransport(t)
		rec.Limit = 100
		require.NoError(t, tr.Exclusive(func(b Bus) error { return b.Data(data...) }))

		ops := rec.Ops()
		require.Len(t, ops, 1)
		assert.Equal(t, gpio.High, ops[0].DC)
		assert.Equal(t, 3, ops[0].Packets)
		assert.Equal(t, []bool{true, true, false}, ops[0].KeepCS)
		assert.Equal(t, data, ops[0].W)
	})

	t.Run("batch", func(t *testing.T) {
		tr, rec, _, _ := newTestTransport(t, WithBatchSize(64))
		rec.Limit = 128
		require.NoError(t, tr.Exclusive(func(b Bus) error { return b.Data(data...) }))

		ops := rec.Ops()
		require.Len(t, ops, 1)
		assert.Equal(t, 4, ops[0].Packets)
		assert.Equal(t, data, ops[0].W)
	})

	t.Run("fits", func(t *testing.T) {
		tr, rec, _, _ := newTestTransport(t, WithBatchSize(4096))
		require.NoError(t, tr.Exclusive(func(b Bus) error { return b.Data(data...) }))

		ops := rec.Ops()
		require.Len(t, ops, 1)
		assert.Zero(t, ops[0].Packets)
		assert.Equal(t, data, ops[0].W)
	})

	t.Run("plain", func(t *testing.T) {
		dc, reset := conntest.NewPins()
		rec := conntest.NewRecorder(dc)
		rec.Limit = 100
		tr, err := New(plainConn{rec}, dc, reset)
		require.NoError(t, err)
		require.NoError(t, tr.Exclusive(func(b Bus) error { return b.Data(data...) }))

		ops := rec.Ops()
		require.Len(t, ops, 1)
		assert.Zero(t, ops[0].Packets)
		assert.Equal(t, data, ops[0].W)
	})
}

// plainConn hides the packet interface of the recorder.
type plainConn struct {
	r *conntest.Recorder
}

func (c plainConn) String() string       { return c.r.String() }
func (c plainConn) Tx(w, r []byte) error { return c.r.Tx(w, r) }
func (c plainConn) Duplex() conn.Duplex  { return c.r.Duplex() }
func (c plainConn) MaxTxSize() int       { return c.r.MaxTxSize() }

func TestTransmitError(t *testing.T) {
	tr, rec, _, _ := newTestTransport(t)
	errBus := errors.New("bus fault")
	rec.Fail(errBus)

	err := tr.Exclusive(func(b Bus) error { return b.Command(0x5c) })
	require.ErrorIs(t, err, errBus)
	assert.Contains(t, err.Error(), "conn: command 0x5c")

	err = tr.Exclusive(func(b Bus) error { return b.Data(1, 2) })
	require.ErrorIs(t, err, errBus)
	assert.Contains(t, err.Error(), "conn: data of 2 bytes")

	rec.Fail(nil)
	require.NoError(t, tr.Exclusive(func(b Bus) error { return b.Command(0xaf) }))
	assert.Len(t, rec.Ops(), 1)
}

func TestExclusiveReleased(t *testing.T) {
	tr, rec, _, _ := newTestTransport(t)

	var leaked Bus
	require.NoError(t, tr.Exclusive(func(b Bus) error {
		leaked = b
		return nil
	}))
	assert.ErrorIs(t, leaked.Command(0xaf), ErrReleased)
	assert.ErrorIs(t, leaked.Data(1), ErrReleased)
	assert.Empty(t, rec.Ops())
}

func TestExclusiveError(t *testing.T) {
	tr, _, _, _ := newTestTransport(t)
	errStop := errors.New("stop")
	assert.ErrorIs(t, tr.Exclusive(func(Bus) error { return errStop }), errStop)
}

func TestExclusivePanic(t *testing.T) {
	tr, _, _, _ := newTestTransport(t)

	func() {
		defer func() {
			assert.NotNil(t, recover())
		}()
		_ = tr.Exclusive(func(Bus) error { panic("boom") })
	}()

	done := make(chan error, 1)
	go func() {
		done <- tr.Exclusive(func(b Bus) error { return b.Command(0xaf) })
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bus still held after panic")
	}
}

func TestExclusiveSerializes(t *testing.T) {
	tr, rec, _, _ := newTestTransport(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v byte) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NoError(t, tr.Exclusive(func(b Bus) error {
					if err := b.Command(v); err != nil {
						return err
					}
					return b.Data(v, v)
				}))
			}
		}(byte(i + 1))
	}
	wg.Wait()

	ops := rec.Ops()
	require.Len(t, ops, 8*50*2)
	for i := 0; i < len(ops); i += 2 {
		require.True(t, ops[i].Command(), "op %d", i)
		v := ops[i].W[0]
		assert.Equal(t, gpio.High, ops[i+1].DC, "op %d", i+1)
		assert.Equal(t, []byte{v, v}, ops[i+1].W, "op %d", i+1)
	}
}

func TestCloseWithoutPort(t *testing.T) {
	tr, _, _, _ := newTestTransport(t)
	assert.NoError(t, tr.Close())
	assert.Contains(t, tr.String(), "dc=DC")
}
