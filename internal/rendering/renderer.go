package rendering

import (
	"context"
	"time"

	"contactsheet/internal/config"
)

// PageConfig describes the printed page layout.
type PageConfig struct {
	Format      string
	Orientation string
	MarginCM    float64
	SettleDelay time.Duration
}

// Landscape reports whether pages are printed sideways.
func (p PageConfig) Landscape() bool {
	return p.Orientation == "landscape"
}

// PageConfigFromConfig derives the page layout from configuration.
func PageConfigFromConfig(cfg *config.Config) PageConfig {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return PageConfig{
		Format:      cfg.Render.Format,
		Orientation: cfg.Render.Orientation,
		MarginCM:    cfg.Render.MarginCM,
		SettleDelay: cfg.SettleDelay(),
	}
}

// Renderer converts an HTML file into a PDF file.
type Renderer interface {
	Render(ctx context.Context, htmlPath, pdfPath string, page PageConfig) error
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(ctx context.Context, htmlPath, pdfPath string, page PageConfig) error

func (f RendererFunc) Render(ctx context.Context, htmlPath, pdfPath string, page PageConfig) error {
	return f(ctx, htmlPath, pdfPath, page)
}
