package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"stitchbook/internal/config"
)

func TestLoadDefaultConfigUsesEnvOwnerAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("STITCHBOOK_OWNER", "ann")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "stitchbook")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Owner.ID != "ann" {
		t.Fatalf("expected owner from env, got %q", cfg.Owner.ID)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "stitchbook.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Display.Symbols != "jp" || cfg.LanguageTag().String() != "en" {
		t.Fatalf("unexpected display defaults: %+v", cfg.Display)
	}
}

func TestLoadOwnerFallsBackToUser(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STITCHBOOK_OWNER", "")
	t.Setenv("USER", "bea")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Owner.ID != "bea" {
		t.Fatalf("expected owner from USER, got %q", cfg.Owner.ID)
	}
}

func TestLoadMissingOwnerFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STITCHBOOK_OWNER", "")
	t.Setenv("USER", "")
	t.Chdir(t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil || !strings.Contains(err.Error(), "owner.id") {
		t.Fatalf("expected owner validation error, got %v", err)
	}
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("STITCHBOOK_OWNER", "env-owner")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	contents := struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
			LogDir  string `toml:"log_dir"`
		} `toml:"paths"`
		Owner struct {
			ID string `toml:"id"`
		} `toml:"owner"`
		Display struct {
			Language string `toml:"language"`
		} `toml:"display"`
		Editor struct {
			LockTimeoutSeconds int `toml:"lock_timeout_seconds"`
		} `toml:"editor"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}{}
	contents.Paths.DataDir = "~/yarn"
	contents.Paths.LogDir = "~/yarn-logs"
	contents.Owner.ID = "  file-owner "
	contents.Display.Language = "fr"
	contents.Editor.LockTimeoutSeconds = 3
	contents.Logging.Format = "JSON"
	contents.Logging.Level = "DEBUG"

	data, err := toml.Marshal(contents)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected explicit config to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "yarn") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, "yarn-logs") {
		t.Fatalf("unexpected log dir %q", cfg.Paths.LogDir)
	}
	if cfg.Owner.ID != "file-owner" {
		t.Fatalf("expected file owner to win over env, got %q", cfg.Owner.ID)
	}
	if cfg.LanguageTag().String() != "fr" {
		t.Fatalf("unexpected language %q", cfg.LanguageTag())
	}
	if cfg.Editor.LockTimeoutSeconds != 3 {
		t.Fatalf("unexpected lock timeout %d", cfg.Editor.LockTimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging enums, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STITCHBOOK_OWNER", "ann")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "log format", body: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "log level", body: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "language", body: "[display]\nlanguage = \"not a tag!\"\n", wantErr: "display.language"},
		{name: "symbols", body: "[display]\nsymbols = \"us\"\n", wantErr: "display.symbols"},
		{name: "lock timeout", body: "[editor]\nlock_timeout_seconds = -1\n", wantErr: "lock_timeout_seconds"},
		{name: "unknown key", body: "[paths]\nstaging_dir = \"/tmp\"\n", wantErr: "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("STITCHBOOK_OWNER", "ann")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Owner.ID != "ann" {
		t.Fatalf("expected empty sample owner to fall back to env, got %q", cfg.Owner.ID)
	}
	if cfg.Logging.RetentionDays != 30 {
		t.Fatalf("unexpected retention %d", cfg.Logging.RetentionDays)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.LockDir(), cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestEncodeReloadsToSameConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STITCHBOOK_OWNER", "")

	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Owner.ID = "bea"
	cfg.Editor.LockTimeoutSeconds = 5

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v\n%s", err, data)
	}
	if *loaded != cfg {
		t.Fatalf("reloaded config differs\nwant %+v\ngot  %+v", cfg, *loaded)
	}
}
