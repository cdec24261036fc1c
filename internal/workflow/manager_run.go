package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"contactsheet/internal/logging"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

// Run executes every registered stage against rc in order and stops at the
// first failure. Finalizers run after success, and also after a failure when
// render.cleanup_on_failure is set. Resources registered on rc are always
// released before Run returns.
func (m *Manager) Run(ctx context.Context, rc *stage.RunContext) Result {
	start := time.Now()
	if rc.RunID == "" {
		rc.RunID = uuid.NewString()
	}
	ctx = services.WithRunID(ctx, rc.RunID)
	logger := logging.WithContext(ctx, m.logger)
	logger.Info("run started",
		logging.Event("run_start"),
		logging.Int("stages", len(m.stages)),
	)

	result := Result{Context: rc}
	for _, stg := range m.stages {
		if err := m.executeStage(ctx, stg, rc); err != nil {
			result.Failure = &Failure{Stage: stg.name, Kind: classify(err, stg.failureKind), Err: err}
			break
		}
	}

	// The tail of the run ignores cancellation so cleanup still happens after an interrupt.
	tail := context.WithoutCancel(ctx)
	if result.Failure == nil || m.cleanupOnFailure {
		result.Warnings = m.runFinalizers(tail, rc)
	}
	if err := rc.Close(); err != nil {
		logger.Warn("failed to release run resources", logging.Error(err))
	}
	result.Elapsed = time.Since(start)

	m.recordHistory(tail, result, start)
	m.publish(tail, result)

	if result.Failure != nil {
		logger.Error("run failed",
			logging.Event("run_failure"),
			logging.Stage(result.Failure.Stage),
			logging.Kind(result.Failure.Kind),
			logging.Int("thumbnails", result.Thumbnails()),
			logging.Duration("elapsed", result.Elapsed),
			logging.Error(result.Failure.Err),
		)
		return result
	}
	logger.Info("run completed",
		logging.Event("run_complete"),
		logging.Int("thumbnails", result.Thumbnails()),
		logging.String("document", rc.DocumentPath),
		logging.Int("warnings", len(result.Warnings)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result
}

func (m *Manager) runFinalizers(ctx context.Context, rc *stage.RunContext) []Warning {
	var warnings []Warning
	for _, stg := range m.finalizers {
		if err := m.executeStage(ctx, stg, rc); err != nil {
			warnings = append(warnings, Warning{Stage: stg.name, Kind: classify(err, stg.failureKind), Err: err})
		}
	}
	return warnings
}

func classify(err error, fallback services.ErrorKind) services.ErrorKind {
	kind := services.KindOf(err)
	if kind == services.KindUnknown && fallback != "" {
		return fallback
	}
	return kind
}
