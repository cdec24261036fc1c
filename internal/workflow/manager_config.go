package workflow

import (
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

// ConfigureStages registers the concrete stage handlers the workflow will run.
// Cleanup is registered as a finalizer rather than a regular stage.
func (m *Manager) ConfigureStages(set StageSet) {
	m.stages = nil
	m.finalizers = nil

	m.addStage(StageResolveParameters, set.Parameters, services.KindInvalidInput)
	m.addStage(StageProbeDuration, set.Inspector, services.KindNoVideoStream)
	m.addStage(StageGenerateAndExtract, set.Extractor, services.KindExtractionFailed)
	m.addStage(StageAssembleGallery, set.Gallery, services.KindWriteFailed)
	m.addStage(StageRenderDocument, set.Renderer, services.KindRenderFailed)

	if set.Cleanup != nil {
		m.setHandlerLogger(set.Cleanup)
		m.finalizers = append(m.finalizers, pipelineStage{
			name:        StageCleanup,
			handler:     set.Cleanup,
			failureKind: services.KindCleanupFailed,
		})
	}
}

func (m *Manager) addStage(name string, handler stage.Handler, kind services.ErrorKind) {
	if handler == nil {
		return
	}
	m.setHandlerLogger(handler)
	m.stages = append(m.stages, pipelineStage{name: name, handler: handler, failureKind: kind})
}

func (m *Manager) setHandlerLogger(handler stage.Handler) {
	if aware, ok := handler.(stage.LoggerAware); ok && m.base != nil {
		aware.SetLogger(m.base)
	}
}

// StageNames lists registered stages followed by finalizers.
func (m *Manager) StageNames() []string {
	names := make([]string, 0, len(m.stages)+len(m.finalizers))
	for _, stg := range m.stages {
		names = append(names, stg.name)
	}
	for _, stg := range m.finalizers {
		names = append(names, stg.name)
	}
	return names
}
