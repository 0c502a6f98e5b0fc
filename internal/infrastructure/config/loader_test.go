package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestFileLoader_WritesDefaultsOnFirstRun tests that a missing config file
// is created from the embedded defaults
func TestFileLoader_WritesDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	loader := NewFileLoader(path)
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.ConfigFormatVersion != "1" {
		t.Errorf("config_format_version = %q, want \"1\"", cfg.ConfigFormatVersion)
	}
	if cfg.ListingTool() != "eza" {
		t.Errorf("listing tool = %q, want eza", cfg.ListingTool())
	}
	if _, ok := cfg.DeferShim(); !ok {
		t.Error("default config should configure a defer shim")
	}
}

// TestFileLoader_ReadsExistingFile tests round-trip of a user-edited config
func TestFileLoader_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`config_format_version: "1"
features:
  lister: false
listing:
  tool: lsd
history:
  size: 7
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Features.Lister == nil || *cfg.Features.Lister {
		t.Error("lister override not parsed as explicit false")
	}
	if cfg.ListingTool() != "lsd" {
		t.Errorf("listing tool = %q, want lsd", cfg.ListingTool())
	}
	if got := cfg.HistoryPolicy().Size; got != 7 {
		t.Errorf("history size = %d, want 7", got)
	}
}

// TestFileLoader_EnvOverridePath tests SHRC_CONFIG redirects the loader
func TestFileLoader_EnvOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.yaml")
	t.Setenv("SHRC_CONFIG", path)

	loader := NewFileLoader("")
	if got := loader.Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}

// TestFileLoader_ExpandsPluginPaths tests tilde expansion on load
func TestFileLoader_ExpandsPluginPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`plugins:
  - name: autosuggestions
    path: ~/plugins/auto.zsh
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Plugins) != 1 {
		t.Fatalf("got %d plugins, want 1", len(cfg.Plugins))
	}
	if p := cfg.Plugins[0].Path; len(p) > 0 && p[0] == '~' {
		t.Errorf("plugin path not expanded: %q", p)
	}
}

// TestFileLoader_Reset tests defaults are restored over a modified file
func TestFileLoader_Reset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("listing:\n  tool: lsd\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(path)
	if err := loader.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingTool() != "eza" {
		t.Errorf("listing tool after reset = %q, want eza", cfg.ListingTool())
	}
}
