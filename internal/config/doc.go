// Package config loads, normalizes, and validates contactsheet configuration.
//
// It supplies repository defaults (including the default input video and
// output directory), expands user paths with tilde shortcuts, reads TOML
// files, and honours environment fallbacks such as CONTACTSHEET_NTFY_TOPIC.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
