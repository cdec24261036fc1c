package rendering

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"contactsheet/internal/config"
	"contactsheet/internal/fileutil"
	"contactsheet/internal/logging"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

const (
	renderStage  = "rendering"
	cleanupStage = "cleanup"
)

// DocumentRenderer is the stage that prints the gallery to PDF.
type DocumentRenderer struct {
	cfg      *config.Config
	renderer Renderer
	logger   *slog.Logger
}

// NewDocumentRenderer constructs the RenderDocument stage.
func NewDocumentRenderer(cfg *config.Config, renderer Renderer, logger *slog.Logger) *DocumentRenderer {
	r := &DocumentRenderer{cfg: cfg, renderer: renderer}
	r.SetLogger(logger)
	return r
}

// SetLogger updates the stage logger.
func (r *DocumentRenderer) SetLogger(logger *slog.Logger) {
	r.logger = logging.NewComponentLogger(logger, renderStage)
}

// Execute renders rc.TempGalleryPath to the configured document name inside
// the output directory.
func (r *DocumentRenderer) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, r.logger)
	if r.renderer == nil {
		return services.Wrap(services.ErrRenderFailed, renderStage, "render pdf", "renderer unavailable", nil)
	}
	if strings.TrimSpace(rc.TempGalleryPath) == "" {
		return services.Wrap(services.ErrRenderFailed, renderStage, "render pdf", "gallery has not been assembled", nil)
	}

	name := config.Default().Render.OutputName
	if r.cfg != nil && r.cfg.Render.OutputName != "" {
		name = r.cfg.Render.OutputName
	}
	pdfPath := filepath.Join(rc.OutputDir, name)
	layout := PageConfigFromConfig(r.cfg)

	renderCtx := ctx
	if r.cfg != nil && r.cfg.RenderTimeout() > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, r.cfg.RenderTimeout())
		defer cancel()
	}

	logger.Info("converting to pdf",
		logging.String("html", rc.TempGalleryPath),
		logging.String("format", layout.Format),
		logging.String("orientation", layout.Orientation),
	)
	if err := r.renderer.Render(renderCtx, rc.TempGalleryPath, pdfPath, layout); err != nil {
		return services.Wrap(services.ErrRenderFailed, renderStage, "render pdf", "headless browser could not print the gallery", err)
	}
	info, err := os.Stat(pdfPath)
	if err != nil {
		return services.Wrap(services.ErrRenderFailed, renderStage, "verify pdf", "renderer reported success but produced no document", err)
	}
	if err := stage.SetPath(&rc.DocumentPath, "document path", pdfPath); err != nil {
		return services.Wrap(services.ErrRenderFailed, renderStage, "record pdf", "", err)
	}

	logger.Info("saved pdf",
		logging.String("document", pdfPath),
		logging.Size("size", info.Size()),
	)
	return nil
}

// HealthCheck reports whether a renderer is wired.
func (r *DocumentRenderer) HealthCheck(context.Context) stage.Health {
	if r.renderer == nil {
		return stage.Unhealthy(renderStage, "renderer unavailable")
	}
	return stage.Healthy(renderStage)
}

// Cleaner removes the absolute-path gallery once it is no longer needed.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner constructs the Cleanup finalizer.
func NewCleaner(logger *slog.Logger) *Cleaner {
	c := &Cleaner{}
	c.SetLogger(logger)
	return c
}

// SetLogger updates the stage logger.
func (c *Cleaner) SetLogger(logger *slog.Logger) {
	c.logger = logging.NewComponentLogger(logger, cleanupStage)
}

// Execute deletes the temp.html this run wrote. Runs that never assembled a
// gallery leave the output directory untouched. A file that is already gone
// is not an error.
func (c *Cleaner) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, c.logger)
	path := rc.TempGalleryPath
	if path == "" {
		return nil
	}

	removed, err := removeFile(path)
	if err != nil {
		return services.Wrap(services.ErrCleanupFailed, cleanupStage, "remove temp gallery", path, err)
	}
	if removed {
		logger.Debug("removed temp gallery", logging.String("path", path))
	}
	return nil
}

// HealthCheck always reports ready; cleanup has no dependencies.
func (c *Cleaner) HealthCheck(context.Context) stage.Health {
	return stage.Healthy(cleanupStage)
}

var errNotRemovable = errors.New("path is a directory")

func removeFile(path string) (bool, error) {
	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		return false, errNotRemovable
	}
	return fileutil.RemoveIfExists(path)
}
