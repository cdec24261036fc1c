package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"contactsheet/internal/services"
)

type Attr = slog.Attr

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Event tags a record with a machine-readable event type such as run_start.
func Event(eventType string) Attr { return slog.String(FieldEventType, eventType) }

// Stage names the pipeline stage a record refers to.
func Stage(name string) Attr { return slog.String(FieldStage, name) }

// Kind records the classified error kind of a failure.
func Kind(kind services.ErrorKind) Attr { return slog.String(FieldErrorKind, string(kind)) }

// Size logs a byte count in human form ("1.2 MB"). Negative sizes log as 0 B.
func Size(key string, bytes int64) Attr {
	return slog.String(key, humanize.Bytes(uint64(max(bytes, 0))))
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
