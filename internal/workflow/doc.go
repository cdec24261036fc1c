// Package workflow runs the contact sheet pipeline.
//
// Manager executes an ordered list of stage handlers over a single
// stage.RunContext, stopping at the first failure, then runs best-effort
// finalizers (temp file cleanup), releases resources registered on the
// context, records the outcome in the history ledger, and publishes a
// notification. The caller receives a Result describing the outcome and the
// partially or fully populated context.
package workflow
