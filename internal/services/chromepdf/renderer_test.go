package chromepdf

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/cdproto/page"

	"contactsheet/internal/rendering"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPrintParamsA4Portrait(t *testing.T) {
	params, err := PrintParams(rendering.PageConfig{Format: "A4", Orientation: "portrait", MarginCM: 1})
	if err != nil {
		t.Fatalf("PrintParams returned error: %v", err)
	}
	if !approx(params.PaperWidth, 8.27) || !approx(params.PaperHeight, 11.69) {
		t.Fatalf("unexpected paper size %vx%v", params.PaperWidth, params.PaperHeight)
	}
	if params.Landscape {
		t.Fatal("expected portrait")
	}
	if !approx(params.MarginTop, 1/2.54) || !approx(params.MarginLeft, params.MarginRight) {
		t.Fatalf("unexpected margins top=%v left=%v right=%v", params.MarginTop, params.MarginLeft, params.MarginRight)
	}
	if !params.PrintBackground {
		t.Fatal("expected backgrounds printed")
	}
}

func TestPrintParamsLandscapeAndUnknownFormat(t *testing.T) {
	params, err := PrintParams(rendering.PageConfig{Format: "letter", Orientation: "landscape"})
	if err != nil {
		t.Fatalf("PrintParams returned error: %v", err)
	}
	if !params.Landscape || !approx(params.PaperWidth, 8.5) {
		t.Fatalf("unexpected params %+v", params)
	}
	if _, err := PrintParams(rendering.PageConfig{Format: "B5"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRenderWritesPrintedBytes(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "temp.html")
	pdfPath := filepath.Join(dir, "sequence.pdf")

	var gotURL string
	var gotSettle time.Duration
	printer := func(_ context.Context, url string, settle time.Duration, _ *page.PrintToPDFParams) ([]byte, error) {
		gotURL = url
		gotSettle = settle
		return []byte("%PDF-1.4 fake"), nil
	}
	renderer := New(WithPrinter(printer))

	layout := rendering.PageConfig{Format: "A4", Orientation: "portrait", MarginCM: 1, SettleDelay: 2 * time.Second}
	if err := renderer.Render(context.Background(), htmlPath, pdfPath, layout); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.HasPrefix(gotURL, "file://") || !strings.HasSuffix(gotURL, "/temp.html") {
		t.Fatalf("unexpected url %q", gotURL)
	}
	if gotSettle != 2*time.Second {
		t.Fatalf("unexpected settle delay %v", gotSettle)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("unexpected pdf content %q", data)
	}
}

func TestRenderPropagatesPrinterFailure(t *testing.T) {
	dir := t.TempDir()
	renderer := New(WithPrinter(func(context.Context, string, time.Duration, *page.PrintToPDFParams) ([]byte, error) {
		return nil, errors.New("chrome not found")
	}))
	err := renderer.Render(context.Background(), filepath.Join(dir, "temp.html"), filepath.Join(dir, "out.pdf"), rendering.PageConfig{Format: "A4"})
	if err == nil || !strings.Contains(err.Error(), "chrome not found") {
		t.Fatalf("expected printer error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.pdf")); !os.IsNotExist(statErr) {
		t.Fatal("no pdf expected after failure")
	}
}

func TestRenderRejectsEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	renderer := New(WithPrinter(func(context.Context, string, time.Duration, *page.PrintToPDFParams) ([]byte, error) {
		return nil, nil
	}))
	if err := renderer.Render(context.Background(), filepath.Join(dir, "t.html"), filepath.Join(dir, "o.pdf"), rendering.PageConfig{Format: "A4"}); err == nil {
		t.Fatal("expected error for empty document")
	}
}
