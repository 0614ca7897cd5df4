// Package config loads, normalizes, and validates stitchbook configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as STITCHBOOK_OWNER. The
// Config type centralizes the data directory, the owner identity used to
// address documents, display preferences, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
