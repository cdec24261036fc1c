// Package logging assembles the structured slog loggers used across
// contactsheet.
//
// It owns the console and JSON handlers, level parsing, and output fan-out to
// the terminal and an optional log file, and exposes context-aware helpers so
// stage code automatically tags log lines with the run ID and stage name. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
