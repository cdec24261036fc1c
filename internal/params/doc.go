// Package params implements the ResolveParameters stage: it fills in defaults
// for the input video, output directory, and interval, validates them, and
// claims the output directory for the duration of the run.
package params
