package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"contactsheet/internal/extraction"
	"contactsheet/internal/logging"
	"contactsheet/internal/sampling"
)

// Option configures the screenshotter.
type Option func(*Screenshotter)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(s *Screenshotter) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Screenshotter) {
		s.logger = logging.NewComponentLogger(logger, "ffmpeg")
	}
}

// WithWidth scales frames to the given width, keeping the aspect ratio.
func WithWidth(width int) Option {
	return func(s *Screenshotter) {
		if width > 0 {
			s.width = width
		}
	}
}

// Screenshotter extracts one image per offset using ffmpeg.
type Screenshotter struct {
	binary string
	width  int
	exec   Executor
	logger *slog.Logger
}

var _ extraction.Backend = (*Screenshotter)(nil)

// New constructs a Screenshotter for the given ffmpeg binary.
func New(binary string, opts ...Option) (*Screenshotter, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	s := &Screenshotter{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Extract writes one frame per job offset. The target filenames are announced
// before the first frame is taken.
func (s *Screenshotter) Extract(ctx context.Context, job extraction.Job, onFilenames func([]string)) error {
	if strings.TrimSpace(job.Input) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(job.Dir) == "" {
		return errors.New("destination directory required")
	}
	template := job.FilenameTemplate
	if template == "" {
		template = "screenshot_%s.png"
	}

	names := sampling.Filenames(template, job.Offsets)
	if onFilenames != nil {
		onFilenames(names)
	}
	s.logger.Debug("will generate "+strings.Join(names, ", "), logging.Int("frames", len(names)))

	for i, offset := range job.Offsets {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(job.Dir, names[i])
		args := s.buildArgs(job.Input, offset, target)
		if err := s.exec.Run(ctx, s.binary, args); err != nil {
			return fmt.Errorf("screenshot at %ss: %w", sampling.FormatOffset(offset), err)
		}
	}
	return nil
}

func (s *Screenshotter) buildArgs(input string, offset float64, target string) []string {
	output := ffmpeggo.KwArgs{"frames:v": 1}
	if s.width > 0 {
		output["vf"] = fmt.Sprintf("scale=%d:-2", s.width)
	}
	return ffmpeggo.Input(input, ffmpeggo.KwArgs{"ss": sampling.FormatOffset(offset)}).
		Output(target, output).
		GlobalArgs("-hide_banner", "-loglevel", "error", "-nostdin").
		OverWriteOutput().
		GetArgs()
}
