package extraction

import "context"

// Job is one packet of extraction work.
type Job struct {
	Input            string
	Offsets          []float64
	Dir              string
	FilenameTemplate string
}

// Backend produces one image per offset in a job.
//
// Implementations call onFilenames with the names they are about to write
// before writing them. Extract returns nil only when every image exists.
type Backend interface {
	Extract(ctx context.Context, job Job, onFilenames func([]string)) error
}

// BackendFunc adapts a plain function to Backend.
type BackendFunc func(ctx context.Context, job Job, onFilenames func([]string)) error

func (f BackendFunc) Extract(ctx context.Context, job Job, onFilenames func([]string)) error {
	return f(ctx, job, onFilenames)
}
