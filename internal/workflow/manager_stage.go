package workflow

import (
	"context"
	"errors"
	"time"

	"contactsheet/internal/logging"
	"contactsheet/internal/stage"
)

func (m *Manager) executeStage(ctx context.Context, stg pipelineStage, rc *stage.RunContext) error {
	stageCtx := logging.WithStage(ctx, stg.name)
	stageLogger := logging.WithContext(stageCtx, m.logger)

	if err := stageCtx.Err(); err != nil {
		stageLogger.Debug("stage skipped after interrupt")
		return err
	}
	if stg.handler == nil {
		return errors.New("stage handler unavailable")
	}

	stageStart := time.Now()
	stageLogger.Info("stage started", logging.Event("stage_start"))

	if err := stg.handler.Execute(stageCtx, rc); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("stage interrupted", logging.Error(err))
			return err
		}
		stageLogger.Warn("stage failed",
			logging.Event("stage_failure"),
			logging.Kind(classify(err, stg.failureKind)),
			logging.Duration("stage_duration", time.Since(stageStart)),
			logging.Error(err),
		)
		return err
	}

	stageLogger.Info("stage completed",
		logging.Event("stage_complete"),
		logging.Duration("stage_duration", time.Since(stageStart)),
	)
	return nil
}
