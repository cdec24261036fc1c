package stage

import (
	"context"
	"log/slog"
)

// Handler describes the contract the workflow manager needs from each stage.
type Handler interface {
	Execute(context.Context, *RunContext) error
	HealthCheck(context.Context) Health
}

// LoggerAware is implemented by handlers that accept a stage-scoped logger
// before execution.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}
