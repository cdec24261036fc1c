package params

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"contactsheet/internal/config"
	"contactsheet/internal/logging"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

// LockName is the lock file created inside the output directory.
const LockName = ".contactsheet.lock"

const stageName = "parameters"

// Resolver is the ResolveParameters stage. It reads the user supplied values
// already on the RunContext, where empty or zero means "use the default".
type Resolver struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewResolver constructs the ResolveParameters stage.
func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	r := &Resolver{cfg: cfg}
	r.SetLogger(logger)
	return r
}

// SetLogger updates the stage logger.
func (r *Resolver) SetLogger(logger *slog.Logger) {
	r.logger = logging.NewComponentLogger(logger, stageName)
}

// Execute resolves the input, output, and interval in place.
func (r *Resolver) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, r.logger)
	cfg := r.cfg
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	input, err := resolveInput(rc.InputPath, cfg, logger)
	if err != nil {
		return err
	}
	output, err := resolveOutput(rc.OutputDir, cfg, logger)
	if err != nil {
		return err
	}

	interval := rc.Interval
	if interval == 0 {
		interval = cfg.Sampling.IntervalSeconds
	}
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return services.Wrap(services.ErrInvalidInput, stageName, "resolve interval",
			fmt.Sprintf("interval must be a positive number of seconds, got %v", interval), nil)
	}

	lock := flock.New(filepath.Join(output, LockName))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrDirectoryCreateFailed, stageName, "lock output dir", output, err)
	}
	if !locked {
		return services.Wrap(services.ErrInvalidInput, stageName, "lock output dir",
			fmt.Sprintf("output directory %s is in use by another run", output), nil)
	}
	rc.OnClose(lock.Unlock)

	rc.InputPath = input
	rc.OutputDir = output
	rc.Interval = interval
	if tmpl := strings.TrimSpace(cfg.Sampling.FilenameTemplate); tmpl != "" {
		rc.FilenameTemplate = tmpl
	}

	logger.Info("parameters resolved",
		logging.String("input", input),
		logging.String("output", output),
		logging.Float64("interval_seconds", interval),
	)
	return nil
}

// HealthCheck reports whether configuration is available.
func (r *Resolver) HealthCheck(context.Context) stage.Health {
	if r.cfg == nil {
		return stage.Unhealthy(stageName, "configuration unavailable")
	}
	return stage.Healthy(stageName)
}

func resolveInput(raw string, cfg *config.Config, logger *slog.Logger) (string, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		input = cfg.Paths.DefaultInput
		logger.Info("no input specified, using default", logging.String("input", input))
	}
	expanded, err := config.ExpandPath(input)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, stageName, "resolve input", input, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, stageName, "resolve input", input, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, stageName, "resolve input",
			fmt.Sprintf("%s does not exist", input), err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrInvalidInput, stageName, "resolve input",
			fmt.Sprintf("%s is a directory, not a video file", input), nil)
	}
	return abs, nil
}

func resolveOutput(raw string, cfg *config.Config, logger *slog.Logger) (string, error) {
	output := strings.TrimSpace(raw)
	if output == "" {
		output = cfg.Paths.DefaultOutputDir
		logger.Info("no output folder specified, using default", logging.String("output", output))
	}
	expanded, err := config.ExpandPath(output)
	if err != nil {
		return "", services.Wrap(services.ErrDirectoryCreateFailed, stageName, "resolve output", output, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrDirectoryCreateFailed, stageName, "resolve output", output, err)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return "", services.Wrap(services.ErrDirectoryCreateFailed, stageName, "resolve output",
			fmt.Sprintf("%s exists and is not a directory", output), nil)
	case err == nil:
		return abs, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", services.Wrap(services.ErrDirectoryCreateFailed, stageName, "resolve output", output, err)
	}

	logger.Info("output folder does not exist, creating it", logging.String("output", abs))
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", services.Wrap(services.ErrDirectoryCreateFailed, stageName, "create output dir", output, err)
	}
	return abs, nil
}
