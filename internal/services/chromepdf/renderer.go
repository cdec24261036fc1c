package chromepdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"contactsheet/internal/fileutil"
	"contactsheet/internal/logging"
	"contactsheet/internal/rendering"
)

// PrintFunc loads url, waits settle, and prints it with params.
type PrintFunc func(ctx context.Context, url string, settle time.Duration, params *page.PrintToPDFParams) ([]byte, error)

// Option configures the renderer.
type Option func(*Renderer)

// WithExecPath selects the Chrome or Chromium binary.
func WithExecPath(path string) Option {
	return func(r *Renderer) {
		r.execPath = path
	}
}

// WithPrinter replaces the browser-backed printer (primarily for tests).
func WithPrinter(fn PrintFunc) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.print = fn
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.NewComponentLogger(logger, "chromepdf")
	}
}

// Renderer prints HTML to PDF through headless Chrome.
type Renderer struct {
	execPath string
	print    PrintFunc
	logger   *slog.Logger
}

var _ rendering.Renderer = (*Renderer)(nil)

// New constructs a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{logger: logging.NewNop()}
	r.print = r.printWithChrome
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render prints htmlPath to pdfPath using the given layout.
func (r *Renderer) Render(ctx context.Context, htmlPath, pdfPath string, layout rendering.PageConfig) error {
	params, err := PrintParams(layout)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path: %w", err)
	}

	target := (&url.URL{Scheme: "file", Path: abs}).String()
	data, err := r.print(ctx, target, layout.SettleDelay, params)
	if err != nil {
		return fmt.Errorf("print to pdf: %w", err)
	}
	if len(data) == 0 {
		return errors.New("print to pdf: empty document")
	}
	if err := fileutil.WriteFileAtomic(pdfPath, data, 0o644); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	r.logger.Debug("pdf written", logging.String("path", pdfPath), logging.Int("bytes", len(data)))
	return nil
}

// PrintParams translates a page layout into Page.printToPDF parameters.
func PrintParams(layout rendering.PageConfig) (*page.PrintToPDFParams, error) {
	width, height, err := PaperSize(layout.Format)
	if err != nil {
		return nil, err
	}
	margin := Inches(layout.MarginCM)
	return page.PrintToPDF().
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithLandscape(layout.Landscape()).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin).
		WithPrintBackground(true), nil
}

func (r *Renderer) printWithChrome(ctx context.Context, target string, settle time.Duration, params *page.PrintToPDFParams) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var data []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.Sleep(settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			data = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return data, nil
}
