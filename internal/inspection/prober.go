package inspection

import (
	"context"

	"contactsheet/internal/media/ffprobe"
)

// Prober reads stream metadata from a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

// ProberFunc adapts a plain function to Prober.
type ProberFunc func(ctx context.Context, path string) (ffprobe.Result, error)

func (f ProberFunc) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	return f(ctx, path)
}

// FFprobe returns a Prober backed by the ffprobe binary.
func FFprobe(binary string) Prober {
	return ProberFunc(func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, binary, path)
	})
}
