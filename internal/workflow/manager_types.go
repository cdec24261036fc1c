package workflow

import (
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

// Stage names, in execution order.
const (
	StageResolveParameters  = "resolve_parameters"
	StageProbeDuration      = "probe_duration"
	StageGenerateAndExtract = "generate_and_extract"
	StageAssembleGallery    = "assemble_gallery"
	StageRenderDocument     = "render_document"
	StageCleanup            = "cleanup"
)

// StageSet bundles the concrete handlers the manager orchestrates. Nil
// handlers are skipped.
type StageSet struct {
	Parameters stage.Handler
	Inspector  stage.Handler
	Extractor  stage.Handler
	Gallery    stage.Handler
	Renderer   stage.Handler
	Cleanup    stage.Handler
}

type pipelineStage struct {
	name    string
	handler stage.Handler
	// failureKind classifies errors that carry no sentinel marker.
	failureKind services.ErrorKind
}
