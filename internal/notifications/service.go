package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"contactsheet/internal/config"
)

const userAgent = "contactsheet/0.1.0"

// Summary describes the run being announced.
type Summary struct {
	InputPath    string
	DocumentPath string
	Thumbnails   int
	Elapsed      time.Duration
	FailedStage  string
	ErrorKind    string
}

// Service defines the notification surface exposed to the workflow.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary Summary) error
	NotifyRunFailed(ctx context.Context, summary Summary, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		completed: cfg.Notifications.Completed,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	completed bool
	errors    bool
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, summary Summary) error {
	if !n.completed {
		return nil
	}
	message := fmt.Sprintf("Contact sheet ready: %s (%d thumbnails in %s)",
		displayName(summary.InputPath), summary.Thumbnails, formatElapsed(summary.Elapsed))
	if doc := strings.TrimSpace(summary.DocumentPath); doc != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, doc)
	}
	return n.send(ctx, payload{
		title:   "contactsheet - Complete",
		message: message,
		tags:    []string{"contactsheet", "run", "completed"},
	})
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, summary Summary, err error) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Failed: ")
	builder.WriteString(displayName(summary.InputPath))
	if stage := strings.TrimSpace(summary.FailedStage); stage != "" {
		builder.WriteString(" at ")
		builder.WriteString(stage)
	}
	if kind := strings.TrimSpace(summary.ErrorKind); kind != "" {
		builder.WriteString(" (")
		builder.WriteString(kind)
		builder.WriteString(")")
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return n.send(ctx, payload{
		title:    "contactsheet - Error",
		message:  builder.String(),
		tags:     []string{"contactsheet", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "contactsheet - Test",
		message:  "Notification system test",
		tags:     []string{"contactsheet", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func displayName(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "unknown input"
	}
	return filepath.Base(path)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	return d.String()
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, Summary) error     { return nil }
func (noopService) NotifyRunFailed(context.Context, Summary, error) error { return nil }
func (noopService) TestNotification(context.Context) error                { return nil }
