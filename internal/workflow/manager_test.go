package workflow_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"contactsheet/internal/config"
	"contactsheet/internal/history"
	"contactsheet/internal/logging"
	"contactsheet/internal/services"
	"contactsheet/internal/stage"
	"contactsheet/internal/workflow"
)

func newStages(calls *[]string) (workflow.StageSet, map[string]*stubStage) {
	stubs := map[string]*stubStage{}
	mk := func(name string) *stubStage {
		s := &stubStage{name: name, calls: calls}
		stubs[name] = s
		return s
	}
	set := workflow.StageSet{
		Parameters: mk(workflow.StageResolveParameters),
		Inspector:  mk(workflow.StageProbeDuration),
		Extractor:  mk(workflow.StageGenerateAndExtract),
		Gallery:    mk(workflow.StageAssembleGallery),
		Renderer:   mk(workflow.StageRenderDocument),
		Cleanup:    mk(workflow.StageCleanup),
	}
	return set, stubs
}

func newManager(cfg *config.Config, opts ...workflow.ManagerOption) *workflow.Manager {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return workflow.NewManager(cfg, logging.NewNop(), opts...)
}

func TestRunExecutesStagesInOrder(t *testing.T) {
	var calls []string
	set, _ := newStages(&calls)
	notifier := &recordingNotifier{}
	recorder := &memoryRecorder{}
	manager := newManager(nil, workflow.WithNotifier(notifier), workflow.WithRecorder(recorder))
	manager.ConfigureStages(set)

	rc := stage.New("", "in.mp4", "out", 10)
	released := false
	rc.OnClose(func() error { released = true; return nil })

	result := manager.Run(context.Background(), rc)
	if !result.Succeeded() || result.Err() != nil {
		t.Fatalf("expected success, got %+v", result.Failure)
	}
	want := []string{
		workflow.StageResolveParameters,
		workflow.StageProbeDuration,
		workflow.StageGenerateAndExtract,
		workflow.StageAssembleGallery,
		workflow.StageRenderDocument,
		workflow.StageCleanup,
	}
	if !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if !slices.Equal(manager.StageNames(), want) {
		t.Fatalf("StageNames = %v", manager.StageNames())
	}
	if rc.RunID == "" {
		t.Fatal("expected run id to be assigned")
	}
	if !released {
		t.Fatal("expected closers to run")
	}
	if len(notifier.completed) != 1 || len(notifier.failed) != 0 {
		t.Fatalf("unexpected notifications %+v", notifier)
	}
	if len(recorder.records) != 1 || recorder.records[0].Status != history.StatusCompleted {
		t.Fatalf("unexpected history %+v", recorder.records)
	}
}

func TestRunShortCircuitsOnNoVideoStream(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	stubs[workflow.StageProbeDuration].err = services.Wrap(services.ErrNoVideoStream, "inspection", "find video stream", "", nil)
	notifier := &recordingNotifier{}
	recorder := &memoryRecorder{}
	manager := newManager(nil, workflow.WithNotifier(notifier), workflow.WithRecorder(recorder))
	manager.ConfigureStages(set)

	rc := stage.New("run-1", "/in/audio.mp3", "/out", 10)
	released := false
	rc.OnClose(func() error { released = true; return nil })
	result := manager.Run(context.Background(), rc)

	if result.Succeeded() {
		t.Fatal("expected failure")
	}
	if result.Failure.Stage != workflow.StageProbeDuration || result.Failure.Kind != services.KindNoVideoStream {
		t.Fatalf("unexpected failure %+v", result.Failure)
	}
	if !slices.Equal(calls, []string{workflow.StageResolveParameters, workflow.StageProbeDuration}) {
		t.Fatalf("later stages must not run, calls = %v", calls)
	}
	if result.Context != rc || rc.InputPath != "/in/audio.mp3" {
		t.Fatal("expected partial context to be returned")
	}
	if _, ok := rc.Duration(); ok {
		t.Fatal("duration must remain absent")
	}
	if !released {
		t.Fatal("closers must run after failure")
	}
	if len(notifier.failed) != 1 || notifier.failed[0].FailedStage != workflow.StageProbeDuration {
		t.Fatalf("unexpected failure notification %+v", notifier.failed)
	}
	rec := recorder.records[0]
	if rec.Status != history.StatusFailed || rec.ErrorKind != "no_video_stream" || rec.FailedStage != workflow.StageProbeDuration {
		t.Fatalf("unexpected history record %+v", rec)
	}
	var failure *workflow.Failure
	if !errors.As(result.Err(), &failure) || !errors.Is(result.Err(), services.ErrNoVideoStream) {
		t.Fatalf("expected Err to expose failure and marker, got %v", result.Err())
	}
}

func TestRunFallsBackToStageFailureKind(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	stubs[workflow.StageRenderDocument].err = errors.New("unmarked")
	manager := newManager(nil)
	manager.ConfigureStages(set)

	result := manager.Run(context.Background(), stage.New("r", "in", "out", 10))
	if result.Failure == nil || result.Failure.Kind != services.KindRenderFailed {
		t.Fatalf("expected render_failed fallback, got %+v", result.Failure)
	}
}

func TestCleanupFailureIsWarning(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	stubs[workflow.StageCleanup].err = services.Wrap(services.ErrCleanupFailed, "cleanup", "remove", "", errors.New("permission denied"))
	manager := newManager(nil)
	manager.ConfigureStages(set)

	result := manager.Run(context.Background(), stage.New("r", "in", "out", 10))
	if !result.Succeeded() {
		t.Fatalf("cleanup failure must not fail the run: %+v", result.Failure)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != services.KindCleanupFailed || result.Warnings[0].Stage != workflow.StageCleanup {
		t.Fatalf("unexpected warnings %+v", result.Warnings)
	}
}

func TestCleanupSkippedAfterFailureByDefault(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	stubs[workflow.StageRenderDocument].err = services.Wrap(services.ErrRenderFailed, "rendering", "", "", nil)
	manager := newManager(nil)
	manager.ConfigureStages(set)

	manager.Run(context.Background(), stage.New("r", "in", "out", 10))
	if slices.Contains(calls, workflow.StageCleanup) {
		t.Fatalf("cleanup must not run after failure by default: %v", calls)
	}
}

func TestCleanupOnFailureOptIn(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	stubs[workflow.StageRenderDocument].err = services.Wrap(services.ErrRenderFailed, "rendering", "", "", nil)
	cfg := config.Default()
	cfg.Render.CleanupOnFailure = true
	manager := newManager(&cfg)
	manager.ConfigureStages(set)

	result := manager.Run(context.Background(), stage.New("r", "in", "out", 10))
	if result.Failure == nil || result.Failure.Stage != workflow.StageRenderDocument {
		t.Fatalf("expected render failure to be reported, got %+v", result.Failure)
	}
	if calls[len(calls)-1] != workflow.StageCleanup {
		t.Fatalf("expected cleanup to run after failure: %v", calls)
	}
}

func TestRunCanceledBeforeStage(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	ctx, cancel := context.WithCancel(context.Background())
	stubs[workflow.StageProbeDuration].fn = func(*stage.RunContext) error {
		cancel()
		return nil
	}
	manager := newManager(nil)
	manager.ConfigureStages(set)

	result := manager.Run(ctx, stage.New("r", "in", "out", 10))
	if result.Failure == nil || result.Failure.Kind != services.KindCanceled || result.Failure.Stage != workflow.StageGenerateAndExtract {
		t.Fatalf("expected cancellation at extraction, got %+v", result.Failure)
	}
	if slices.Contains(calls, workflow.StageGenerateAndExtract) {
		t.Fatalf("extraction must not start after cancel: %v", calls)
	}
}

func TestHealthChecks(t *testing.T) {
	var calls []string
	set, stubs := newStages(&calls)
	manager := newManager(nil)
	manager.ConfigureStages(set)
	if !manager.Ready(context.Background()) {
		t.Fatal("expected all stages ready")
	}
	stubs[workflow.StageRenderDocument].err = errors.New("chrome missing")
	checks := manager.HealthChecks(context.Background())
	if len(checks) != 6 || manager.Ready(context.Background()) {
		t.Fatalf("expected render stage unhealthy, got %+v", checks)
	}
}

func TestConfigureStagesSkipsNilHandlers(t *testing.T) {
	var calls []string
	manager := newManager(nil)
	manager.ConfigureStages(workflow.StageSet{Parameters: &stubStage{name: "p", calls: &calls}})
	result := manager.Run(context.Background(), stage.New("r", "in", "out", 10))
	if !result.Succeeded() || len(calls) != 1 {
		t.Fatalf("expected only parameters stage, calls=%v", calls)
	}
}
