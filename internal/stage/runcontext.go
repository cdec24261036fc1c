package stage

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultFilenameTemplate names extracted thumbnails; %s is replaced by the
// sample offset.
const DefaultFilenameTemplate = "screenshot_%s.png"

// ErrAlreadySet is returned when a stage tries to overwrite a field an
// earlier stage populated.
var ErrAlreadySet = errors.New("run context field already set")

// RunContext is the single mutable value threaded through every pipeline
// stage of one run. Fields filled by one stage are write-once; Artifacts only
// grows.
type RunContext struct {
	RunID            string
	InputPath        string
	OutputDir        string
	Interval         float64
	FilenameTemplate string

	duration    float64
	hasDuration bool
	offsets     []float64
	hasOffsets  bool
	artifacts   []string

	GalleryPath     string
	TempGalleryPath string
	DocumentPath    string

	mu      sync.Mutex
	closers []func() error
}

// New creates a context from the user supplied (or defaulted) parameters.
func New(runID, inputPath, outputDir string, interval float64) *RunContext {
	return &RunContext{
		RunID:            runID,
		InputPath:        inputPath,
		OutputDir:        outputDir,
		Interval:         interval,
		FilenameTemplate: DefaultFilenameTemplate,
	}
}

// Duration reports the probed media duration in seconds.
func (rc *RunContext) Duration() (float64, bool) {
	return rc.duration, rc.hasDuration
}

// SetDuration records the probed media duration.
func (rc *RunContext) SetDuration(seconds float64) error {
	if rc.hasDuration {
		return fmt.Errorf("duration: %w", ErrAlreadySet)
	}
	rc.duration = seconds
	rc.hasDuration = true
	return nil
}

// Offsets returns a copy of the generated sample offsets.
func (rc *RunContext) Offsets() ([]float64, bool) {
	if !rc.hasOffsets {
		return nil, false
	}
	return append([]float64(nil), rc.offsets...), true
}

// SetOffsets records the sample offsets. The sequence is immutable once set.
func (rc *RunContext) SetOffsets(offsets []float64) error {
	if rc.hasOffsets {
		return fmt.Errorf("offsets: %w", ErrAlreadySet)
	}
	rc.offsets = append([]float64(nil), offsets...)
	rc.hasOffsets = true
	return nil
}

// AppendArtifacts records produced artifact filenames.
func (rc *RunContext) AppendArtifacts(names ...string) {
	rc.artifacts = append(rc.artifacts, names...)
}

// Artifacts returns a copy of the produced artifact filenames.
func (rc *RunContext) Artifacts() []string {
	return append([]string(nil), rc.artifacts...)
}

// SetPath assigns a write-once path field such as GalleryPath.
func SetPath(field *string, name, value string) error {
	if *field != "" {
		return fmt.Errorf("%s: %w", name, ErrAlreadySet)
	}
	*field = value
	return nil
}

// OnClose registers fn to run when the pipeline run ends, whatever its outcome.
func (rc *RunContext) OnClose(fn func() error) {
	if fn == nil {
		return
	}
	rc.mu.Lock()
	rc.closers = append(rc.closers, fn)
	rc.mu.Unlock()
}

// Close runs registered closers in reverse order and joins their errors.
func (rc *RunContext) Close() error {
	rc.mu.Lock()
	closers := rc.closers
	rc.closers = nil
	rc.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
