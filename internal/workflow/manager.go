package workflow

import (
	"context"
	"log/slog"

	"contactsheet/internal/config"
	"contactsheet/internal/history"
	"contactsheet/internal/logging"
	"contactsheet/internal/notifications"
)

// Recorder persists run summaries.
type Recorder interface {
	Append(ctx context.Context, rec history.Record) (int64, error)
}

// Manager runs the pipeline stages in order over one RunContext.
type Manager struct {
	cfg *config.Config
	// base is handed to stage handlers, which add their own component.
	base     *slog.Logger
	logger   *slog.Logger
	notifier notifications.Service
	recorder Recorder

	stages     []pipelineStage
	finalizers []pipelineStage

	cleanupOnFailure bool
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithNotifier overrides the notification service built from config.
func WithNotifier(notifier notifications.Service) ManagerOption {
	return func(m *Manager) {
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

// WithRecorder enables history recording.
func WithRecorder(recorder Recorder) ManagerOption {
	return func(m *Manager) {
		m.recorder = recorder
	}
}

// NewManager constructs a workflow manager. Stages are registered separately
// with ConfigureStages.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:      cfg,
		base:     logger,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		notifier: notifications.NewService(cfg),
	}
	if cfg != nil {
		m.cleanupOnFailure = cfg.Render.CleanupOnFailure
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
