package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Measure.Fusion.BaseWeight != 0.85 {
		t.Errorf("fusion base weight = %v, want default 0.85", cfg.Measure.Fusion.BaseWeight)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicitly named missing file should be an error")
	}
}

func TestLoadOverridesOnlyNamedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlens.yaml")
	content := []byte(`
server:
  addr: ":9999"
measure:
  fusion:
    base_weight: 0.7
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("server addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Measure.Fusion.BaseWeight != 0.7 {
		t.Errorf("fusion base weight = %v, want 0.7 from file", cfg.Measure.Fusion.BaseWeight)
	}
	// Untouched keys keep defaults.
	if cfg.Database.Path != "fitlens.db" {
		t.Errorf("database path = %q, want default", cfg.Database.Path)
	}
	if cfg.Detector.MinConfidence != 0.5 {
		t.Errorf("detector min confidence = %v, want default 0.5", cfg.Detector.MinConfidence)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlens.yaml")
	if err := os.WriteFile(path, []byte("server: [not: valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should be an error")
	}
}
