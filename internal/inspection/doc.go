// Package inspection implements the ProbeDuration stage, which confirms the
// input carries a video stream and records that stream's duration.
package inspection
