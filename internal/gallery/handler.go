package gallery

import (
	"context"
	"log/slog"
	"path/filepath"

	"contactsheet/internal/fileutil"
	"contactsheet/internal/logging"
	"contactsheet/internal/sampling"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

const (
	// IndexName is the browsable gallery with relative image references.
	IndexName = "index.html"
	// TempName is the renderer input with absolute image references.
	TempName = "temp.html"

	stageName = "gallery"
)

// Assembler is the stage that writes index.html and temp.html.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler constructs the AssembleGallery stage.
func NewAssembler(logger *slog.Logger) *Assembler {
	a := &Assembler{}
	a.SetLogger(logger)
	return a
}

// SetLogger updates the stage logger.
func (a *Assembler) SetLogger(logger *slog.Logger) {
	a.logger = logging.NewComponentLogger(logger, stageName)
}

// Execute renders one tile per sample offset, in offset order.
func (a *Assembler) Execute(ctx context.Context, rc *stage.RunContext) error {
	logger := logging.WithContext(ctx, a.logger)

	offsets, ok := rc.Offsets()
	if !ok {
		return services.Wrap(services.ErrWriteFailed, stageName, "assemble gallery", "sample offsets have not been generated", nil)
	}
	template := rc.FilenameTemplate
	if template == "" {
		template = stage.DefaultFilenameTemplate
	}
	title := TitleFromInput(rc.InputPath)

	indexPath := filepath.Join(rc.OutputDir, IndexName)
	relative := Page{Title: title, Entries: BuildEntries(offsets, template, "", sampling.Filename)}
	if err := writePage(indexPath, relative); err != nil {
		return services.Wrap(services.ErrWriteFailed, stageName, "write index", indexPath, err)
	}
	if err := stage.SetPath(&rc.GalleryPath, "gallery path", indexPath); err != nil {
		return services.Wrap(services.ErrWriteFailed, stageName, "record index", "", err)
	}
	logger.Info("html file written", logging.String("path", indexPath), logging.Int("tiles", len(offsets)))

	outputDir, err := filepath.Abs(rc.OutputDir)
	if err != nil {
		return services.Wrap(services.ErrWriteFailed, stageName, "resolve output dir", rc.OutputDir, err)
	}
	tempPath := filepath.Join(rc.OutputDir, TempName)
	absolute := Page{Title: title, Entries: BuildEntries(offsets, template, outputDir, sampling.Filename)}
	if err := writePage(tempPath, absolute); err != nil {
		return services.Wrap(services.ErrWriteFailed, stageName, "write temp gallery", tempPath, err)
	}
	if err := stage.SetPath(&rc.TempGalleryPath, "temp gallery path", tempPath); err != nil {
		return services.Wrap(services.ErrWriteFailed, stageName, "record temp gallery", "", err)
	}
	logger.Debug("temp html file written", logging.String("path", tempPath))
	return nil
}

// HealthCheck always reports ready; the gallery only needs the filesystem.
func (a *Assembler) HealthCheck(context.Context) stage.Health {
	return stage.Healthy(stageName)
}

func writePage(path string, page Page) error {
	data, err := Render(page)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
