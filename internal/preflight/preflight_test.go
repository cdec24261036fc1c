package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"contactsheet/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryAccess("test", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if result := CheckDirectoryAccess("test", filepath.Join(dir, "nope")); result.Passed || result.Detail == "" {
		t.Fatalf("expected failure for missing dir, got %+v", result)
	}
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", file); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectoryMissingButCreatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	result := CheckOutputDirectory("out", path)
	if !result.Passed {
		t.Fatalf("expected creatable output dir to pass, got %s", result.Detail)
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vid.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckFileReadable("input", file); !result.Passed {
		t.Fatalf("expected readable file, got %s", result.Detail)
	}
	if result := CheckFileReadable("input", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckFileReadable("input", filepath.Join(dir, "missing.mp4")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckNtfy(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	if result := CheckNtfy(context.Background(), ok.URL+"/topic"); !result.Passed {
		t.Fatalf("expected reachable, got %s", result.Detail)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	if result := CheckNtfy(context.Background(), broken.URL); result.Passed {
		t.Fatal("expected failure on 502")
	}
}

func TestRunAllAndSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteInput(t, cfg.Paths.DefaultInput)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 checks without ntfy, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures %+v", failed)
	}

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 dependency statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || !statuses[1].Available {
		t.Fatalf("expected stubbed ffmpeg and ffprobe to be found: %+v", statuses)
	}
}
