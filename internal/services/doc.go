// Package services defines shared utilities consumed by the pipeline stage
// handlers and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and stage names for logging.
//   - Sentinel error markers plus the Wrap helper so every stage failure can
//     be classified into one of the pipeline's error kinds.
//
// Stage handlers should always return errors built with Wrap so the workflow
// manager can report the failed stage and its kind consistently.
package services
