// Package sampling derives the thumbnail sample offsets for a video and splits
// them into bounded packets for the extraction backend.
//
// Everything here is pure: the same inputs always yield the same output and
// nothing touches the filesystem or the clock.
package sampling
