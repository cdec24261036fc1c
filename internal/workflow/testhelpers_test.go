package workflow_test

import (
	"context"
	"sync"

	"contactsheet/internal/history"
	"contactsheet/internal/notifications"
	"contactsheet/internal/stage"
)

type stubStage struct {
	name  string
	calls *[]string
	err   error
	fn    func(*stage.RunContext) error
}

func (s *stubStage) Execute(_ context.Context, rc *stage.RunContext) error {
	*s.calls = append(*s.calls, s.name)
	if s.fn != nil {
		if err := s.fn(rc); err != nil {
			return err
		}
	}
	return s.err
}

func (s *stubStage) HealthCheck(context.Context) stage.Health {
	if s.err != nil {
		return stage.Unhealthy(s.name, s.err.Error())
	}
	return stage.Healthy(s.name)
}

type recordingNotifier struct {
	mu        sync.Mutex
	completed []notifications.Summary
	failed    []notifications.Summary
}

func (n *recordingNotifier) NotifyRunCompleted(_ context.Context, summary notifications.Summary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, summary)
	return nil
}

func (n *recordingNotifier) NotifyRunFailed(_ context.Context, summary notifications.Summary, _ error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, summary)
	return nil
}

func (n *recordingNotifier) TestNotification(context.Context) error { return nil }

type memoryRecorder struct {
	records []history.Record
}

func (r *memoryRecorder) Append(_ context.Context, rec history.Record) (int64, error) {
	r.records = append(r.records, rec)
	return int64(len(r.records)), nil
}
