// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns a parsed Result; Decode parses a
// payload captured elsewhere. Helper methods on Result locate the first video
// stream and parse its duration, which is all the pipeline needs to plan
// thumbnail offsets.
package ffprobe
