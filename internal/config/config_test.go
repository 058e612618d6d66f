package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	d, err := cfg.DelayDuration()
	if err != nil {
		t.Fatalf("DelayDuration: %v", err)
	}
	if d != 5*time.Second {
		t.Errorf("default delay = %v, want 5s", d)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traitbase.yaml")
	content := `version: 1
cache_dir: /tmp/traits
delay: 2s
providers:
  - pantheria
  - elton_birds
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded != path {
		t.Errorf("loaded path = %q, want %q", loaded, path)
	}
	if cfg.CacheDir != "/tmp/traits" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if d, _ := cfg.DelayDuration(); d != 2*time.Second {
		t.Errorf("delay = %v, want 2s", d)
	}
	if len(cfg.Providers) != 2 || cfg.Providers[0] != "pantheria" {
		t.Errorf("Providers = %v", cfg.Providers)
	}
	if cfg.Database != "./traitbase.db" {
		t.Errorf("Database default not applied: %q", cfg.Database)
	}
}

func TestLoadFromPathBadDelay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traitbase.yaml")
	if err := os.WriteFile(path, []byte("delay: soon\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected an error for an unparseable delay")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Providers = []string{"amniote"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if len(loaded.Providers) != 1 || loaded.Providers[0] != "amniote" {
		t.Errorf("Providers = %v", loaded.Providers)
	}
}

func TestFindConfigPathEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}
}
