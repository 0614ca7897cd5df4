package testsupport

import (
	"path/filepath"
	"testing"

	"stitchbook/internal/config"
)

// DefaultOwner is the owner id every generated test config uses.
const DefaultOwner = "tester"

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Owner.ID = DefaultOwner

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithOwner overrides the owner id on the test config.
func WithOwner(owner string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Owner.ID = owner
	}
}

// WithLockTimeout sets how long mutations wait for a held document.
func WithLockTimeout(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Editor.LockTimeoutSeconds = seconds
	}
}

// WithLanguage sets the display language.
func WithLanguage(tag string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.Language = tag
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
