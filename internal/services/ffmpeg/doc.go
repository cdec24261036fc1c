// Package ffmpeg captures single-frame screenshots with the ffmpeg CLI.
//
// Screenshotter implements extraction.Backend: for every offset in a job it
// seeks the input, grabs one frame, and writes it under the job directory
// using the job's filename template. Arguments are assembled with ffmpeg-go
// and executed through an injectable Executor so tests never spawn ffmpeg.
package ffmpeg
