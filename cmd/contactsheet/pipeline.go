package main

import (
	"log/slog"

	"contactsheet/internal/config"
	"contactsheet/internal/extraction"
	"contactsheet/internal/gallery"
	"contactsheet/internal/inspection"
	"contactsheet/internal/params"
	"contactsheet/internal/rendering"
	"contactsheet/internal/workflow"
)

// pipeline bundles a configured manager with the extraction stage so callers
// can subscribe to packet progress.
type pipeline struct {
	manager   *workflow.Manager
	extractor *extraction.Extractor
}

func buildPipeline(cfg *config.Config, logger *slog.Logger, b backends, opts ...workflow.ManagerOption) *pipeline {
	extractor := extraction.NewExtractor(cfg, b.extractor, logger)
	mgr := workflow.NewManager(cfg, logger, opts...)
	mgr.ConfigureStages(workflow.StageSet{
		Parameters: params.NewResolver(cfg, logger),
		Inspector:  inspection.NewInspector(cfg, b.prober, logger),
		Extractor:  extractor,
		Gallery:    gallery.NewAssembler(logger),
		Renderer:   rendering.NewDocumentRenderer(cfg, b.renderer, logger),
		Cleanup:    rendering.NewCleaner(logger),
	})
	return &pipeline{manager: mgr, extractor: extractor}
}
