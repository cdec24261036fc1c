package workflow_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"contactsheet/internal/extraction"
	"contactsheet/internal/gallery"
	"contactsheet/internal/history"
	"contactsheet/internal/inspection"
	"contactsheet/internal/logging"
	"contactsheet/internal/media/ffprobe"
	"contactsheet/internal/params"
	"contactsheet/internal/rendering"
	"contactsheet/internal/sampling"
	"contactsheet/internal/stage"
	"contactsheet/internal/testsupport"
	"contactsheet/internal/workflow"
)

func TestPipelineEndToEndWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := testsupport.WriteInput(t, cfg.Paths.DefaultInput)

	prober := inspection.ProberFunc(func(context.Context, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", Duration: "22"}}}, nil
	})
	var jobs []extraction.Job
	backend := extraction.BackendFunc(func(_ context.Context, job extraction.Job, onFilenames func([]string)) error {
		jobs = append(jobs, job)
		names := sampling.Filenames(job.FilenameTemplate, job.Offsets)
		onFilenames(names)
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(job.Dir, name), []byte("png"), 0o644); err != nil {
				return err
			}
		}
		return nil
	})
	var renderedHTML string
	renderer := rendering.RendererFunc(func(_ context.Context, htmlPath, pdfPath string, _ rendering.PageConfig) error {
		data, err := os.ReadFile(htmlPath)
		if err != nil {
			return err
		}
		renderedHTML = string(data)
		return os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644)
	})

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := logging.NewNop()
	manager := workflow.NewManager(cfg, logger, workflow.WithRecorder(store))
	manager.ConfigureStages(workflow.StageSet{
		Parameters: params.NewResolver(cfg, logger),
		Inspector:  inspection.NewInspector(cfg, prober, logger),
		Extractor:  extraction.NewExtractor(cfg, backend, logger),
		Gallery:    gallery.NewAssembler(logger),
		Renderer:   rendering.NewDocumentRenderer(cfg, renderer, logger),
		Cleanup:    rendering.NewCleaner(logger),
	})

	rc := stage.New("", "", "", 0)
	result := manager.Run(context.Background(), rc)
	if !result.Succeeded() {
		t.Fatalf("expected success, got %v", result.Err())
	}

	if rc.InputPath != input {
		t.Fatalf("expected default input %q, got %q", input, rc.InputPath)
	}
	if d, _ := rc.Duration(); d != 22 {
		t.Fatalf("expected duration 22, got %v", d)
	}
	if offsets, _ := rc.Offsets(); !slices.Equal(offsets, []float64{0, 10}) {
		t.Fatalf("expected offsets [0 10], got %v", offsets)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected a single packet, got %d", len(jobs))
	}
	if !slices.Equal(rc.Artifacts(), []string{"screenshot_0.png", "screenshot_10.png"}) {
		t.Fatalf("unexpected artifacts %v", rc.Artifacts())
	}

	index, err := os.ReadFile(filepath.Join(rc.OutputDir, gallery.IndexName))
	if err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	html := string(index)
	if strings.Count(html, `class="img-container"`) != 2 {
		t.Fatalf("expected two tiles:\n%s", html)
	}
	if i, j := strings.Index(html, "<p>0:0:0</p>"), strings.Index(html, "<p>0:0:10</p>"); i < 0 || j < i {
		t.Fatalf("expected labels 0:0:0 then 0:0:10:\n%s", html)
	}
	if !strings.Contains(renderedHTML, "file://"+filepath.Join(rc.OutputDir, "screenshot_0.png")) {
		t.Fatalf("renderer should receive absolute image paths:\n%s", renderedHTML)
	}

	if _, err := os.Stat(filepath.Join(rc.OutputDir, "sequence.pdf")); err != nil {
		t.Fatalf("expected sequence.pdf: %v", err)
	}
	if _, err := os.Stat(filepath.Join(rc.OutputDir, gallery.TempName)); !os.IsNotExist(err) {
		t.Fatalf("expected temp.html to be removed, stat err = %v", err)
	}

	records, err := store.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 1 || records[0].Thumbnails != 2 || records[0].Status != history.StatusCompleted {
		t.Fatalf("unexpected history %+v", records)
	}
}

func TestRefusedRunLeavesLockHoldersGalleryAlone(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Render.CleanupOnFailure = true
	testsupport.WriteInput(t, cfg.Paths.DefaultInput)
	outDir := cfg.Paths.DefaultOutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	holder := stage.New("holder", "", outDir, 0)
	if err := params.NewResolver(cfg, nil).Execute(context.Background(), holder); err != nil {
		t.Fatalf("first run could not take the lock: %v", err)
	}
	t.Cleanup(func() { _ = holder.Close() })
	temp := filepath.Join(outDir, gallery.TempName)
	if err := os.WriteFile(temp, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := logging.NewNop()
	manager := workflow.NewManager(cfg, logger)
	manager.ConfigureStages(workflow.StageSet{
		Parameters: params.NewResolver(cfg, logger),
		Cleanup:    rendering.NewCleaner(logger),
	})
	result := manager.Run(context.Background(), stage.New("", "", outDir, 0))
	if result.Succeeded() || result.Failure.Stage != workflow.StageResolveParameters {
		t.Fatalf("expected the second run to be refused, got %v", result.Err())
	}
	if _, err := os.Stat(temp); err != nil {
		t.Fatalf("refused run removed the running run's temp gallery: %v", err)
	}
}
