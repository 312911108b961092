package conn

import (
	"fmt"
	"slices"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus and Device select the SPI port, use a negative Bus for the first available port.
	Bus    int
	Device int

	// SpeedHz is the bus clock, one of ValidSPISpeeds.
	SpeedHz uint32

	// BatchSize limits a single transfer; 0 uses the port limit.
	BatchSize int

	// Reset and DC are GPIO pin names.
	Reset string
	DC    string
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	SpeedHz:   8_000_000,
	BatchSize: 4096,
	Reset:     "GPIO25",
	DC:        "GPIO24",
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	28_000_000,
	32_000_000,
	36_000_000,
	40_000_000,
	48_000_000,
	50_000_000,
	52_000_000,
}

// Port is the periph port name for the configured bus and device.
func (config *SPIConfig) Port() string {
	if config.Bus < 0 {
		return ""
	}
	return fmt.Sprintf("SPI%d.%d", config.Bus, config.Device)
}

// Open the SPI port and pins described by config, a nil config uses DefaultSPIConfig.
//
// The host drivers must have been initialized (periph.io/x/host/v3.Init) first.
func Open(config *SPIConfig, opts ...Option) (*Transport, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if !slices.Contains(ValidSPISpeeds, config.SpeedHz) {
		return nil, fmt.Errorf("%w: %dHz", ErrSpeed, config.SpeedHz)
	}

	reset := gpioreg.ByName(config.Reset)
	if reset == nil || reset == gpio.INVALID {
		return nil, fmt.Errorf("%w: %q", ErrResetPin, config.Reset)
	}
	dc := gpioreg.ByName(config.DC)
	if dc == nil || dc == gpio.INVALID {
		return nil, fmt.Errorf("%w: %q", ErrDCPin, config.DC)
	}

	port, err := spireg.Open(config.Port())
	if err != nil {
		return nil, fmt.Errorf("conn: open SPI port %q: %w", config.Port(), err)
	}
	c, err := port.Connect(physic.Frequency(config.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("conn: connect %s: %w", port, err)
	}

	opts = append([]Option{WithBatchSize(config.BatchSize), withPort(port)}, opts...)
	return New(c, dc, reset, opts...)
}
