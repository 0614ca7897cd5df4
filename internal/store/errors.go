package store

import "errors"

var (
	// ErrMissingOwner reports a call without an owner id.
	ErrMissingOwner = errors.New("missing owner id")
	// ErrMissingProject reports a call without a project id.
	ErrMissingProject = errors.New("missing project id")
	// ErrMissingRecord reports a call without a record id.
	ErrMissingRecord = errors.New("missing record id")
	// ErrNotFound reports an absent document.
	ErrNotFound = errors.New("document not found")
	// ErrLocked reports a document another editor currently holds.
	ErrLocked = errors.New("document is being edited")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
