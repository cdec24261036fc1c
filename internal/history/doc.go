// Package history persists a one-row summary of every pipeline run in SQLite.
//
// The ledger stores outcomes only (input, output, thumbnail count, failure
// stage and kind); the run context itself is never persisted. It backs the
// `contactsheet history` command.
package history
