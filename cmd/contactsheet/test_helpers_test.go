package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"contactsheet/internal/config"
	"contactsheet/internal/extraction"
	"contactsheet/internal/inspection"
	"contactsheet/internal/media/ffprobe"
	"contactsheet/internal/rendering"
	"contactsheet/internal/sampling"
	"contactsheet/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	cfg.Logging.Level = "error"
	testsupport.WriteInput(t, cfg.Paths.DefaultInput)

	configPath := filepath.Join(base, "config.toml")
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// stubBackends probes a fixed duration, writes placeholder thumbnails, and
// prints a small placeholder PDF. renderErr, when set, fails rendering.
func stubBackends(duration string, renderErr error) backendFactory {
	return func(*config.Config, *slog.Logger) (backends, error) {
		return backends{
			prober: inspection.ProberFunc(func(context.Context, string) (ffprobe.Result, error) {
				return ffprobe.Result{
					Streams: []ffprobe.Stream{{CodecType: "video", Duration: duration}},
					Format:  ffprobe.Format{Duration: duration},
				}, nil
			}),
			extractor: extraction.BackendFunc(func(_ context.Context, job extraction.Job, onFilenames func([]string)) error {
				names := sampling.Filenames(job.FilenameTemplate, job.Offsets)
				onFilenames(names)
				for _, name := range names {
					if err := os.WriteFile(filepath.Join(job.Dir, name), []byte("png"), 0o644); err != nil {
						return err
					}
				}
				return nil
			}),
			renderer: rendering.RendererFunc(func(_ context.Context, _ string, pdfPath string, _ rendering.PageConfig) error {
				if renderErr != nil {
					return renderErr
				}
				return os.WriteFile(pdfPath, []byte("%PDF-1.4\n"), 0o644)
			}),
		}, nil
	}
}

func runCLI(t *testing.T, factory backendFactory, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommandWithBackends(factory)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

var errRenderBoom = errors.New("browser crashed")
