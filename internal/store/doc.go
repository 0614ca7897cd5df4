// Package store persists project and record documents in SQLite and guards
// edits with per-document advisory file locks.
//
// Each row stores the full document as JSON alongside the columns needed for
// ownership checks and ordering. Records are scoped to their owner; projects
// carry an owner id and are only readable through it. Missing identifiers are
// caller errors and fail fast with sentinel errors before touching the
// database.
//
// Schema changes bump schemaVersion in schema.go; an older database reports
// ErrSchemaMismatch instead of being migrated in place.
package store
