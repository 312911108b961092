// Command ssd1322-demo shows an animation on a SSD1322 panel attached to the SPI bus.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"periph.io/x/host/v3"

	ssd1322 "github.com/BeatGlow/ssd1322"
	"github.com/BeatGlow/ssd1322/assets"
	"github.com/BeatGlow/ssd1322/conn"
	"github.com/BeatGlow/ssd1322/draw"
)

func main() {
	fs := afero.NewOsFs()
	config, err := parseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fatal(err)
	}

	log := newLogger(config.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, log, fs, config); err != nil {
		log.Error().Err(err).Msg("demo failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("invalid log level, using info")
		l = zerolog.InfoLevel
	}
	return log.Level(l)
}

func run(ctx context.Context, log zerolog.Logger, fs afero.Fs, config *config) error {
	demo, err := loadScene(fs, config)
	if err != nil {
		return err
	}

	if _, err = host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}

	t, err := conn.Open(config.spi(), conn.WithLogger(&log))
	if err != nil {
		return err
	}
	log.Info().Stringer("conn", t).Msg("using connection")

	panel := ssd1322.New(t, &ssd1322.Config{
		Contrast: config.Display.Contrast,
		Logger:   &log,
	})
	defer func() {
		if err := panel.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}()
	if err = panel.Initialize(); err != nil {
		return err
	}
	log.Info().Stringer("panel", panel).Msg("panel ready")

	ticker := time.NewTicker(time.Second / time.Duration(config.Display.FPS))
	defer ticker.Stop()

	for n := 0; config.Display.Frames == 0 || n < config.Display.Frames; n++ {
		if err = demo.render(panel.Buffer(), n); err != nil {
			return err
		}
		if err = panel.Update(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			log.Info().Int("frames", n+1).Msg("stopping")
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

const iconSize = 48

func loadScene(fs afero.Fs, config *config) (*scene, error) {
	var icon *draw.Icon
	if config.Display.Icon != "" {
		var err error
		if icon, err = assets.LoadIconFit(fs, config.Display.Icon, iconSize, iconSize); err != nil {
			return nil, err
		}
	}
	s := newScene(icon, nil, config.Display.FontSize)
	if config.Display.Font != "" {
		f, err := assets.LoadTrueType(fs, config.Display.Font)
		if err != nil {
			return nil, err
		}
		s.font = f
	}
	return s, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
