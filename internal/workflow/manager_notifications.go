package workflow

import (
	"context"
	"time"

	"contactsheet/internal/history"
	"contactsheet/internal/logging"
	"contactsheet/internal/notifications"
)

func (m *Manager) recordHistory(ctx context.Context, result Result, started time.Time) {
	if m.recorder == nil || result.Context == nil {
		return
	}
	rc := result.Context
	rec := history.Record{
		RunID:        rc.RunID,
		InputPath:    rc.InputPath,
		OutputDir:    rc.OutputDir,
		Interval:     rc.Interval,
		Thumbnails:   result.Thumbnails(),
		Status:       history.StatusCompleted,
		DocumentPath: rc.DocumentPath,
		StartedAt:    started,
		FinishedAt:   started.Add(result.Elapsed),
	}
	if duration, ok := rc.Duration(); ok {
		rec.Duration = duration
	}
	if result.Failure != nil {
		rec.Status = history.StatusFailed
		rec.FailedStage = result.Failure.Stage
		rec.ErrorKind = string(result.Failure.Kind)
		if result.Failure.Err != nil {
			rec.ErrorMessage = result.Failure.Err.Error()
		}
	}
	if _, err := m.recorder.Append(ctx, rec); err != nil {
		logging.WithContext(ctx, m.logger).Warn("failed to record run history", logging.Error(err))
	}
}

func (m *Manager) publish(ctx context.Context, result Result) {
	if m.notifier == nil || result.Context == nil {
		return
	}
	rc := result.Context
	summary := notifications.Summary{
		InputPath:    rc.InputPath,
		DocumentPath: rc.DocumentPath,
		Thumbnails:   result.Thumbnails(),
		Elapsed:      result.Elapsed,
	}

	var err error
	if result.Failure != nil {
		summary.FailedStage = result.Failure.Stage
		summary.ErrorKind = string(result.Failure.Kind)
		err = m.notifier.NotifyRunFailed(ctx, summary, result.Failure.Err)
	} else {
		err = m.notifier.NotifyRunCompleted(ctx, summary)
	}
	if err != nil {
		logging.WithContext(ctx, m.logger).Warn("notification failed", logging.Error(err))
	}
}
