package main

import (
	"testing"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/ssd1322/conn"
)

const testConfig = `
log_level = "debug"

[spi]
bus = 1
device = 2
speed_hz = 16000000
dc = "GPIO5"

[display]
contrast = 100
font_size = 18.5
fps = 10
`

func TestParseConfigDefaults(t *testing.T) {
	c, err := parseConfig(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 20, c.Display.FPS)
	assert.Equal(t, 12.0, c.Display.FontSize)
	assert.Equal(t, conn.DefaultSPIConfig, *c.spi())
}

func TestParseConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/demo.toml", []byte(testConfig), 0o644))

	c, err := parseConfig(fs, []string{"-c", "/etc/demo.toml"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/demo.toml", c.File)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 1, c.SPI.Bus)
	assert.Equal(t, 2, c.SPI.Device)
	assert.Equal(t, uint32(16000000), c.SPI.SpeedHz)
	assert.Equal(t, "GPIO5", c.SPI.DC)
	assert.Equal(t, conn.DefaultSPIConfig.Reset, c.SPI.Reset, "unset values keep their default")
	assert.Equal(t, uint8(100), c.Display.Contrast)
	assert.Equal(t, 18.5, c.Display.FontSize)
	assert.Equal(t, 10, c.Display.FPS)
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "demo.toml", []byte(testConfig), 0o644))

	c, err := parseConfig(fs, []string{"--config", "demo.toml", "--fps", "30", "--dc", "GPIO6", "--frames", "5"})
	require.NoError(t, err)
	assert.Equal(t, 30, c.Display.FPS)
	assert.Equal(t, "GPIO6", c.SPI.DC)
	assert.Equal(t, 5, c.Display.Frames)
	assert.Equal(t, uint8(100), c.Display.Contrast)
}

func TestParseConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.toml", []byte("[spi\nbus = "), 0o644))

	tests := []struct {
		Name string
		Args []string
	}{
		{"missing file", []string{"-c", "missing.toml"}},
		{"broken file", []string{"-c", "broken.toml"}},
		{"unknown flag", []string{"--brightness", "1"}},
		{"zero fps", []string{"--fps", "0"}},
		{"negative frames", []string{"--frames", "-1"}},
		{"zero font size", []string{"--font-size", "0"}},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := parseConfig(fs, test.Args)
			assert.Error(t, err)
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := parseConfig(afero.NewMemMapFs(), []string{"--help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
