// Package tracker applies edits and progress updates to stored documents.
//
// Every mutation follows the same shape: take the document's advisory lock,
// load it, run a pure transform from the pattern, project, selection or
// progress packages, refresh derived stats and save it back in one store
// call. Read helpers pass straight through to the store.
package tracker
