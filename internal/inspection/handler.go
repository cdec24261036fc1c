package inspection

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"contactsheet/internal/config"
	"contactsheet/internal/logging"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

const stageName = "inspection"

// Inspector is the ProbeDuration stage.
type Inspector struct {
	cfg    *config.Config
	prober Prober
	logger *slog.Logger
}

// NewInspector constructs the ProbeDuration stage.
func NewInspector(cfg *config.Config, prober Prober, logger *slog.Logger) *Inspector {
	i := &Inspector{cfg: cfg, prober: prober}
	i.SetLogger(logger)
	return i
}

// SetLogger updates the stage logger.
func (i *Inspector) SetLogger(logger *slog.Logger) {
	i.logger = logging.NewComponentLogger(logger, stageName)
}

// Execute probes rc.InputPath and records the first video stream's duration.
func (i *Inspector) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, i.logger)
	if i.prober == nil {
		return services.Wrap(services.ErrNoVideoStream, stageName, "ffprobe", "duration prober unavailable", nil)
	}

	probeCtx := ctx
	if i.cfg != nil && i.cfg.ProbeTimeout() > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, i.cfg.ProbeTimeout())
		defer cancel()
	}

	result, err := i.prober.Probe(probeCtx, rc.InputPath)
	if err != nil {
		return services.Wrap(services.ErrNoVideoStream, stageName, "ffprobe",
			"could not find streams data for video", err)
	}
	if result.VideoStreamCount() == 0 {
		return services.Wrap(services.ErrNoVideoStream, stageName, "find video stream",
			fmt.Sprintf("%s has no video stream", rc.InputPath), nil)
	}
	duration, ok := result.VideoDuration()
	if !ok {
		return services.Wrap(services.ErrNoDuration, stageName, "read duration",
			"could not find duration", nil)
	}
	if err := rc.SetDuration(duration); err != nil {
		return services.Wrap(services.ErrNoDuration, stageName, "record duration", "", err)
	}

	logger.Info(fmt.Sprintf("video lasts %s seconds", strconv.FormatFloat(duration, 'f', -1, 64)),
		logging.Float64("duration_seconds", duration),
		logging.Int("video_streams", result.VideoStreamCount()),
		logging.String("container", result.Format.FormatName),
		logging.Float64("container_seconds", result.DurationSeconds()),
		logging.Size("source_size", result.SizeBytes()),
	)
	return nil
}

// HealthCheck verifies the ffprobe binary can be found.
func (i *Inspector) HealthCheck(context.Context) stage.Health {
	if i.prober == nil {
		return stage.Unhealthy(stageName, "duration prober unavailable")
	}
	if i.cfg == nil {
		return stage.Healthy(stageName)
	}
	binary := i.cfg.FFmpeg.FFprobeBinary
	if _, err := exec.LookPath(binary); err != nil {
		return stage.Unhealthy(stageName, fmt.Sprintf("ffprobe binary %q not found", binary))
	}
	return stage.HealthyWithDetail(stageName, binary)
}
