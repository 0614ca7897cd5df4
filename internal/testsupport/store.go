package testsupport

import (
	"context"
	"testing"

	"stitchbook/internal/config"
	"stitchbook/internal/project"
	"stitchbook/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustCreateProject stores p and returns it with its assigned id.
func MustCreateProject(t testing.TB, st *store.Store, p *project.Project) *project.Project {
	t.Helper()

	if _, err := st.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("store.CreateProject: %v", err)
	}
	return p
}
