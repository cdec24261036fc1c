// Package main hosts the contactsheet CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration lazily, wires the pipeline
// stages to their ffmpeg and headless Chrome backends, and renders run
// history and environment status as tables.
package main
