package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contactsheet/internal/config"
	"contactsheet/internal/logging"
	"contactsheet/internal/sampling"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

const stageName = "extraction"

// Extractor is the stage that plans sample offsets and extracts a thumbnail
// for each of them.
type Extractor struct {
	cfg      *config.Config
	backend  Backend
	logger   *slog.Logger
	progress func(Progress)
}

// NewExtractor constructs the extraction stage.
func NewExtractor(cfg *config.Config, backend Backend, logger *slog.Logger) *Extractor {
	e := &Extractor{cfg: cfg, backend: backend}
	e.SetLogger(logger)
	return e
}

// SetLogger updates the stage logger.
func (e *Extractor) SetLogger(logger *slog.Logger) {
	e.logger = logging.NewComponentLogger(logger, stageName)
}

// OnProgress registers a callback invoked after every completed packet.
func (e *Extractor) OnProgress(fn func(Progress)) {
	e.progress = fn
}

// Execute generates offsets from the probed duration, splits them into
// packets, and runs the packets through the backend. Filenames of completed
// packets are recorded even when a later packet fails.
func (e *Extractor) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, e.logger)

	duration, ok := rc.Duration()
	if !ok {
		return services.Wrap(services.ErrExtractionFailed, stageName, "plan offsets", "media duration has not been probed", nil)
	}

	limit := sampling.MaxOffsets
	if e.cfg != nil && e.cfg.Sampling.MaxThumbnails > 0 {
		limit = min(e.cfg.Sampling.MaxThumbnails, sampling.MaxOffsets)
	}
	if planned := sampling.Count(duration, rc.Interval); planned > limit {
		return services.Wrap(services.ErrInvalidInput, stageName, "plan offsets",
			fmt.Sprintf("%gs sampled every %gs needs more than %d thumbnails (sampling.max_thumbnails)", duration, rc.Interval, limit), nil)
	}

	offsets := sampling.Generate(duration, rc.Interval)
	if err := rc.SetOffsets(offsets); err != nil {
		return services.Wrap(services.ErrExtractionFailed, stageName, "plan offsets", "record sample offsets", err)
	}
	logger.Info("will output thumbnails",
		logging.Int("thumbnails", len(offsets)),
		logging.Float64("duration_seconds", duration),
		logging.Float64("interval_seconds", rc.Interval),
	)

	packetSize := sampling.DefaultPacketSize
	if e.cfg != nil && e.cfg.Sampling.PacketSize > 0 {
		packetSize = e.cfg.Sampling.PacketSize
	}
	packets := sampling.Split(offsets, packetSize)
	if len(packets) == 0 {
		logger.Info("video shorter than interval; nothing to extract")
		return nil
	}
	logger.Info("splitting screenshots into packets",
		logging.Int("packets", len(packets)),
		logging.Int("packet_size", packetSize),
	)

	scheduler := &Scheduler{
		Backend:  e.backend,
		Logger:   e.logger,
		Progress: e.progress,
	}
	if e.cfg != nil {
		scheduler.Delay = e.cfg.PacketDelay()
		scheduler.PacketTimeout = e.cfg.PacketTimeout()
	}

	result, err := scheduler.Run(ctx, packets, Request{
		Input:            rc.InputPath,
		Dir:              rc.OutputDir,
		FilenameTemplate: rc.FilenameTemplate,
	})
	rc.AppendArtifacts(result.Filenames...)
	if err != nil {
		message := "extraction failed"
		var packetErr *PacketError
		if errors.As(err, &packetErr) {
			message = fmt.Sprintf("extraction stopped at packet %d of %d", packetErr.Index+1, len(packets))
		}
		return services.Wrap(services.ErrExtractionFailed, stageName, "extract packets", message, err)
	}

	logger.Info("all screenshots taken", logging.Int("thumbnails", len(result.Filenames)))
	return nil
}

// HealthCheck reports whether an extraction backend is wired.
func (e *Extractor) HealthCheck(context.Context) stage.Health {
	if e.backend == nil {
		return stage.Unhealthy(stageName, "extraction backend unavailable")
	}
	return stage.Healthy(stageName)
}
