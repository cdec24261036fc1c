package workflow

import (
	"context"

	"contactsheet/internal/stage"
)

// HealthChecks asks every registered stage and finalizer for its readiness.
func (m *Manager) HealthChecks(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(m.stages)+len(m.finalizers))
	for _, stg := range append(append([]pipelineStage(nil), m.stages...), m.finalizers...) {
		health := stg.handler.HealthCheck(ctx)
		if health.Name == "" {
			health.Name = stg.name
		}
		checks = append(checks, health)
	}
	return checks
}

// Ready reports whether every stage is healthy.
func (m *Manager) Ready(ctx context.Context) bool {
	for _, health := range m.HealthChecks(ctx) {
		if !health.Ready {
			return false
		}
	}
	return true
}
