// Package logging assembles structured slog loggers and attribute helpers used
// across stitchbook.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and lets callers attach document identifiers (owner, project,
// record) to a context so every line logged during an edit carries them. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
