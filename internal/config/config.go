package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output, and state directory configuration.
type Paths struct {
	DefaultInput     string `toml:"default_input"`
	DefaultOutputDir string `toml:"default_output_dir"`
	StateDir         string `toml:"state_dir"`
	LogDir           string `toml:"log_dir"`
}

// Sampling controls how sample offsets are derived and batched.
type Sampling struct {
	IntervalSeconds  float64 `toml:"interval_seconds"`
	PacketSize       int     `toml:"packet_size"`
	PacketDelayMS    int     `toml:"packet_delay_ms"`
	MaxThumbnails    int     `toml:"max_thumbnails"`
	FilenameTemplate string  `toml:"filename_template"`
}

// FFmpeg contains the media tool binaries and their time limits.
type FFmpeg struct {
	FFmpegBinary         string `toml:"ffmpeg_binary"`
	FFprobeBinary        string `toml:"ffprobe_binary"`
	ProbeTimeoutSeconds  int    `toml:"probe_timeout_seconds"`
	PacketTimeoutSeconds int    `toml:"packet_timeout_seconds"`
	ThumbnailWidth       int    `toml:"thumbnail_width"`
}

// Render contains the HTML to PDF conversion settings.
type Render struct {
	ChromePath       string  `toml:"chrome_path"`
	Format           string  `toml:"format"`
	Orientation      string  `toml:"orientation"`
	MarginCM         float64 `toml:"margin_cm"`
	SettleDelayMS    int     `toml:"settle_delay_ms"`
	TimeoutSeconds   int     `toml:"timeout_seconds"`
	OutputName       string  `toml:"output_name"`
	CleanupOnFailure bool    `toml:"cleanup_on_failure"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Completed      bool   `toml:"completed"`
	Errors         bool   `toml:"errors"`
}

// History controls the run ledger.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for contactsheet.
//
// Configuration sections by subsystem:
//   - Paths: default input file, default output directory, state and logs
//   - Sampling: interval, packet size, pacing, thumbnail filename template
//   - FFmpeg: ffmpeg/ffprobe binaries and timeouts
//   - Render: PDF page setup and headless Chrome settings
//   - Notifications: optional ntfy push on completion or failure
//   - History: SQLite run ledger
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Sampling      Sampling      `toml:"sampling"`
	FFmpeg        FFmpeg        `toml:"ffmpeg"`
	Render        Render        `toml:"render"`
	Notifications Notifications `toml:"notifications"`
	History       History       `toml:"history"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("contactsheet.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. Output directories
// are created per run by the parameter resolution stage.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the SQLite run ledger location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// PacketDelay returns the pause enforced between extraction packets.
func (c *Config) PacketDelay() time.Duration {
	return time.Duration(c.Sampling.PacketDelayMS) * time.Millisecond
}

// ProbeTimeout returns the ffprobe time limit, or 0 when unlimited.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.FFmpeg.ProbeTimeoutSeconds) * time.Second
}

// PacketTimeout returns the per-packet extraction time limit, or 0 when unlimited.
func (c *Config) PacketTimeout() time.Duration {
	return time.Duration(c.FFmpeg.PacketTimeoutSeconds) * time.Second
}

// RenderTimeout returns the PDF rendering time limit, or 0 when unlimited.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.Render.TimeoutSeconds) * time.Second
}

// SettleDelay returns how long the renderer waits after page load before printing.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Render.SettleDelayMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
