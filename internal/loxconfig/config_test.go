package loxconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoRcFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 255 {
		t.Fatalf("got MaxCallDepth %d, want 255", cfg.MaxCallDepth)
	}
}

func TestLoadOverlaysRcFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".loxrc.yaml")
	if err := os.WriteFile(path, []byte("max_call_depth: 64\nno_color: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 64 {
		t.Fatalf("got MaxCallDepth %d, want 64", cfg.MaxCallDepth)
	}
	if !cfg.NoColor {
		t.Fatal("expected NoColor to be true from rc file")
	}
}

func TestLoadEnvOverridesRcFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".loxrc.yaml")
	if err := os.WriteFile(path, []byte("max_call_depth: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOX_MAX_CALL_DEPTH", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 10 {
		t.Fatalf("got MaxCallDepth %d, want 10 (env should win over rc file)", cfg.MaxCallDepth)
	}
}
