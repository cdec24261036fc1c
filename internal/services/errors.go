package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind names a class of pipeline failure.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindDirectoryCreateFailed ErrorKind = "directory_create_failed"
	KindNoVideoStream         ErrorKind = "no_video_stream"
	KindNoDuration            ErrorKind = "no_duration"
	KindExtractionFailed      ErrorKind = "extraction_failed"
	KindWriteFailed           ErrorKind = "write_failed"
	KindRenderFailed          ErrorKind = "render_failed"
	KindCleanupFailed         ErrorKind = "cleanup_failed"
	KindCanceled              ErrorKind = "canceled"
	KindUnknown               ErrorKind = "unknown"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDirectoryCreateFailed = errors.New("directory create failed")
	ErrNoVideoStream         = errors.New("no video stream")
	ErrNoDuration            = errors.New("no duration")
	ErrExtractionFailed      = errors.New("extraction failed")
	ErrWriteFailed           = errors.New("write failed")
	ErrRenderFailed          = errors.New("render failed")
	ErrCleanupFailed         = errors.New("cleanup failed")
)

var markers = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrDirectoryCreateFailed, KindDirectoryCreateFailed},
	{ErrNoVideoStream, KindNoVideoStream},
	{ErrNoDuration, KindNoDuration},
	{ErrExtractionFailed, KindExtractionFailed},
	{ErrWriteFailed, KindWriteFailed},
	{ErrRenderFailed, KindRenderFailed},
	{ErrCleanupFailed, KindCleanupFailed},
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf classifies err by the first sentinel marker it carries. Context
// cancellation wins over markers because the run was interrupted rather than
// failing on its own.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) && !hasMarker(err) {
		return KindCanceled
	}
	for _, m := range markers {
		if errors.Is(err, m.err) {
			return m.kind
		}
	}
	return KindUnknown
}

func hasMarker(err error) bool {
	for _, m := range markers {
		if errors.Is(err, m.err) {
			return true
		}
	}
	return false
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
