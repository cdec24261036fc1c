package workflow

import (
	"fmt"
	"time"

	"contactsheet/internal/services"
	"contactsheet/internal/stage"
)

// Failure identifies the stage that stopped a run.
type Failure struct {
	Stage string
	Kind  services.ErrorKind
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", f.Stage, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Warning is a non-fatal problem reported by a finalizer.
type Warning struct {
	Stage string
	Kind  services.ErrorKind
	Err   error
}

// Result is the outcome of one pipeline run.
type Result struct {
	Context  *stage.RunContext
	Failure  *Failure
	Warnings []Warning
	Elapsed  time.Duration
}

// Succeeded reports whether every stage completed.
func (r Result) Succeeded() bool {
	return r.Failure == nil
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

// Thumbnails returns the number of images the run produced.
func (r Result) Thumbnails() int {
	if r.Context == nil {
		return 0
	}
	return len(r.Context.Artifacts())
}
