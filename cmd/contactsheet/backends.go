package main

import (
	"log/slog"

	"contactsheet/internal/config"
	"contactsheet/internal/deps"
	"contactsheet/internal/extraction"
	"contactsheet/internal/inspection"
	"contactsheet/internal/rendering"
	"contactsheet/internal/services/chromepdf"
	"contactsheet/internal/services/ffmpeg"
)

// backends are the external-tool collaborators behind the pipeline stages.
type backends struct {
	prober    inspection.Prober
	extractor extraction.Backend
	renderer  rendering.Renderer
}

type backendFactory func(cfg *config.Config, logger *slog.Logger) (backends, error)

func defaultBackends(cfg *config.Config, logger *slog.Logger) (backends, error) {
	shooter, err := ffmpeg.New(cfg.FFmpeg.FFmpegBinary,
		ffmpeg.WithLogger(logger),
		ffmpeg.WithWidth(cfg.FFmpeg.ThumbnailWidth),
	)
	if err != nil {
		return backends{}, err
	}
	return backends{
		prober:    inspection.FFprobe(cfg.FFmpeg.FFprobeBinary),
		extractor: shooter,
		renderer: chromepdf.New(
			chromepdf.WithExecPath(deps.ResolveChrome(cfg.Render.ChromePath)),
			chromepdf.WithLogger(logger),
		),
	}, nil
}
