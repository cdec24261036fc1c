package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"contactsheet/internal/history"
	"contactsheet/internal/services"
	"contactsheet/internal/workflow"
)

func TestRunCommandProducesContactSheet(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "sheet")

	out, _, err := runCLI(t, stubBackends("22", nil),
		"--config", env.configPath, "run", "--output", outDir, "--interval", "10")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "Thumbnails: 2")
	requireContains(t, out, "sequence.pdf")

	for _, name := range []string{"screenshot_0.png", "screenshot_10.png", "index.html", "sequence.pdf"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "temp.html")); !os.IsNotExist(err) {
		t.Fatalf("expected temp.html to be removed, stat err=%v", err)
	}
}

func TestRunCommandUsesConfiguredDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("35", nil), "--config", env.configPath, "run")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "Thumbnails: 3")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.DefaultOutputDir, "screenshot_20.png")); err != nil {
		t.Fatalf("expected default output dir to be used: %v", err)
	}
}

func TestRunCommandReportsFailure(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("22", errRenderBoom), "--config", env.configPath, "run")
	if err == nil {
		t.Fatal("expected run to fail")
	}
	var failure *workflow.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected workflow failure, got %T", err)
	}
	if failure.Kind != services.KindRenderFailed {
		t.Fatalf("failure kind = %s", failure.Kind)
	}
	requireContains(t, out, "after 2 thumbnails")
	requireContains(t, out, "render_document")
}

func TestRunCommandRejectsBadInterval(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, stubBackends("22", nil), "--config", env.configPath, "run", "--interval=-5")
	var failure *workflow.Failure
	if !errors.As(err, &failure) || failure.Kind != services.KindInvalidInput {
		t.Fatalf("expected invalid input failure, got %v", err)
	}
}

func TestRunCommandRefusesTinyInterval(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("7200", nil), "--config", env.configPath, "run", "--interval", "0.000000001")
	var failure *workflow.Failure
	if !errors.As(err, &failure) || failure.Kind != services.KindInvalidInput {
		t.Fatalf("expected invalid input failure, got %v", err)
	}
	if failure.Stage != workflow.StageGenerateAndExtract {
		t.Fatalf("failed stage = %s", failure.Stage)
	}
	requireContains(t, out, "after 0 thumbnails")
}

func TestHistoryCommandListsRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("22", nil), "--config", env.configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	if _, _, err := runCLI(t, stubBackends("22", nil), "--config", env.configPath, "run"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, _, err := runCLI(t, stubBackends("22", errRenderBoom), "--config", env.configPath, "run"); err == nil {
		t.Fatal("expected second run to fail")
	}

	out, _, err = runCLI(t, stubBackends("22", nil), "--config", env.configPath, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, string(history.StatusCompleted))
	requireContains(t, out, "render_document (render_failed)")
	requireContains(t, out, "vid.mp4")
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("22", nil), "--config", env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "== Paths ==")
	requireContains(t, out, "== Stages ==")
	requireContains(t, out, "Interval:")
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, stubBackends("22", nil), "--config", env.configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Notification not sent")
}
