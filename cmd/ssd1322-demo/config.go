package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/BeatGlow/ssd1322/conn"
)

type spiConfig struct {
	Bus       int    `toml:"bus"`
	Device    int    `toml:"device"`
	SpeedHz   uint32 `toml:"speed_hz"`
	BatchSize int    `toml:"batch_size"`
	Reset     string `toml:"reset"`
	DC        string `toml:"dc"`
}

type displayConfig struct {
	Contrast uint8   `toml:"contrast"`
	Icon     string  `toml:"icon"`
	Font     string  `toml:"font"`
	FontSize float64 `toml:"font_size"`
	FPS      int     `toml:"fps"`
	Frames   int     `toml:"frames"`
}

type config struct {
	File     string        `toml:"-"`
	LogLevel string        `toml:"log_level"`
	SPI      spiConfig     `toml:"spi"`
	Display  displayConfig `toml:"display"`
}

func defaultConfig() *config {
	return &config{
		LogLevel: "info",
		SPI: spiConfig{
			Bus:       conn.DefaultSPIConfig.Bus,
			Device:    conn.DefaultSPIConfig.Device,
			SpeedHz:   conn.DefaultSPIConfig.SpeedHz,
			BatchSize: conn.DefaultSPIConfig.BatchSize,
			Reset:     conn.DefaultSPIConfig.Reset,
			DC:        conn.DefaultSPIConfig.DC,
		},
		Display: displayConfig{
			FontSize: 12,
			FPS:      20,
		},
	}
}

func (c *config) spi() *conn.SPIConfig {
	return &conn.SPIConfig{
		Bus:       c.SPI.Bus,
		Device:    c.SPI.Device,
		SpeedHz:   c.SPI.SpeedHz,
		BatchSize: c.SPI.BatchSize,
		Reset:     c.SPI.Reset,
		DC:        c.SPI.DC,
	}
}

func newFlagSet(c *config) *flag.FlagSet {
	flags := flag.NewFlagSet("ssd1322-demo", flag.ContinueOnError)
	flags.StringVarP(&c.File, "config", "c", c.File, "TOML configuration file")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.IntVar(&c.SPI.Bus, "spi-bus", c.SPI.Bus, "SPI bus, -1 for the first available")
	flags.IntVar(&c.SPI.Device, "spi-dev", c.SPI.Device, "SPI device")
	flags.Uint32Var(&c.SPI.SpeedHz, "speed", c.SPI.SpeedHz, "SPI clock in Hz")
	flags.IntVar(&c.SPI.BatchSize, "batch", c.SPI.BatchSize, "Largest single SPI transfer in bytes")
	flags.StringVar(&c.SPI.Reset, "reset", c.SPI.Reset, "Reset GPIO pin")
	flags.StringVar(&c.SPI.DC, "dc", c.SPI.DC, "Data/Command GPIO pin (DC)")
	flags.Uint8Var(&c.Display.Contrast, "contrast", c.Display.Contrast, "Contrast current, 0 for maximum")
	flags.StringVar(&c.Display.Icon, "icon", c.Display.Icon, "Icon image (PNG, GIF or BMP)")
	flags.StringVar(&c.Display.Font, "font", c.Display.Font, "TrueType font, the built-in 7x13 font if empty")
	flags.Float64Var(&c.Display.FontSize, "font-size", c.Display.FontSize, "TrueType font size in points")
	flags.IntVar(&c.Display.FPS, "fps", c.Display.FPS, "Frames per second")
	flags.IntVar(&c.Display.Frames, "frames", c.Display.Frames, "Number of frames to show, 0 runs until interrupted")
	return flags
}

// parseConfig parses the command line, values from the configuration file are
// overridden by flags that were set.
func parseConfig(fs afero.Fs, args []string) (*config, error) {
	c := defaultConfig()
	if err := newFlagSet(c).Parse(args); err != nil {
		return nil, err
	}
	if c.File == "" {
		return c, c.validate()
	}

	fileConfig := defaultConfig()
	if err := loadConfig(fs, c.File, fileConfig); err != nil {
		return nil, err
	}
	if err := newFlagSet(fileConfig).Parse(args); err != nil {
		return nil, err
	}
	return fileConfig, fileConfig.validate()
}

func loadConfig(fs afero.Fs, name string, c *config) error {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err = toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal config %s: %w", name, err)
	}
	return nil
}

func (c *config) validate() error {
	if c.Display.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.Display.FPS)
	}
	if c.Display.FontSize <= 0 {
		return fmt.Errorf("invalid font size %g", c.Display.FontSize)
	}
	if c.Display.Frames < 0 {
		return fmt.Errorf("invalid number of frames %d", c.Display.Frames)
	}
	return nil
}
