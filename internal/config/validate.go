package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"contactsheet/internal/sampling"
)

var pageFormats = map[string]struct{}{
	"A3":     {},
	"A4":     {},
	"A5":     {},
	"LETTER": {},
	"LEGAL":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSampling(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSampling() error {
	if c.Sampling.IntervalSeconds <= 0 {
		return errors.New("sampling.interval_seconds must be positive")
	}
	if c.Sampling.PacketSize <= 0 {
		return errors.New("sampling.packet_size must be positive")
	}
	if c.Sampling.MaxThumbnails <= 0 || c.Sampling.MaxThumbnails > sampling.MaxOffsets {
		return fmt.Errorf("sampling.max_thumbnails must be between 1 and %d", sampling.MaxOffsets)
	}
	if c.Sampling.PacketDelayMS < 0 {
		return errors.New("sampling.packet_delay_ms must be zero or positive")
	}
	if strings.Count(c.Sampling.FilenameTemplate, "%s") != 1 {
		return fmt.Errorf("sampling.filename_template must contain exactly one %%s placeholder, got %q", c.Sampling.FilenameTemplate)
	}
	if strings.ContainsAny(c.Sampling.FilenameTemplate, `/\`) {
		return errors.New("sampling.filename_template must be a bare file name")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.ThumbnailWidth < 0 {
		return errors.New("ffmpeg.thumbnail_width must be zero (native size) or positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if _, ok := pageFormats[c.Render.Format]; !ok {
		return fmt.Errorf("render.format: unsupported value %q", c.Render.Format)
	}
	switch c.Render.Orientation {
	case "portrait", "landscape":
	default:
		return fmt.Errorf("render.orientation must be portrait or landscape, got %q", c.Render.Orientation)
	}
	if c.Render.MarginCM < 0 {
		return errors.New("render.margin_cm must be zero or positive")
	}
	if c.Render.SettleDelayMS < 0 {
		return errors.New("render.settle_delay_ms must be zero or positive")
	}
	if filepath.Base(c.Render.OutputName) != c.Render.OutputName {
		return errors.New("render.output_name must be a bare file name")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
