package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSampling()
	c.normalizeFFmpeg()
	c.normalizeRender()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DefaultInput) == "" {
		c.Paths.DefaultInput = defaultInput
	}
	if c.Paths.DefaultInput, err = expandPath(c.Paths.DefaultInput); err != nil {
		return fmt.Errorf("paths.default_input: %w", err)
	}
	if strings.TrimSpace(c.Paths.DefaultOutputDir) == "" {
		c.Paths.DefaultOutputDir = defaultOutputDir
	}
	if c.Paths.DefaultOutputDir, err = expandPath(c.Paths.DefaultOutputDir); err != nil {
		return fmt.Errorf("paths.default_output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSampling() {
	if c.Sampling.PacketSize == 0 {
		c.Sampling.PacketSize = defaultPacketSize
	}
	if c.Sampling.MaxThumbnails == 0 {
		c.Sampling.MaxThumbnails = defaultMaxThumbnails
	}
	c.Sampling.FilenameTemplate = strings.TrimSpace(c.Sampling.FilenameTemplate)
	if c.Sampling.FilenameTemplate == "" {
		c.Sampling.FilenameTemplate = Default().Sampling.FilenameTemplate
	}
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	if c.FFmpeg.ProbeTimeoutSeconds < 0 {
		c.FFmpeg.ProbeTimeoutSeconds = 0
	}
	if c.FFmpeg.PacketTimeoutSeconds < 0 {
		c.FFmpeg.PacketTimeoutSeconds = 0
	}
}

func (c *Config) normalizeRender() {
	c.Render.ChromePath = strings.TrimSpace(c.Render.ChromePath)
	if c.Render.ChromePath == "" {
		if value, ok := os.LookupEnv("CONTACTSHEET_CHROME_PATH"); ok {
			c.Render.ChromePath = strings.TrimSpace(value)
		}
	}
	c.Render.Format = strings.ToUpper(strings.TrimSpace(c.Render.Format))
	if c.Render.Format == "" {
		c.Render.Format = defaultPageFormat
	}
	c.Render.Orientation = strings.ToLower(strings.TrimSpace(c.Render.Orientation))
	if c.Render.Orientation == "" {
		c.Render.Orientation = defaultOrientation
	}
	c.Render.OutputName = strings.TrimSpace(c.Render.OutputName)
	if c.Render.OutputName == "" {
		c.Render.OutputName = defaultDocumentName
	}
	if c.Render.TimeoutSeconds < 0 {
		c.Render.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("CONTACTSHEET_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
