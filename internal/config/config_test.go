package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	limits := cfg.ZoomLimits()
	if limits.MinScale != 0.1 || limits.MaxScale != 5 || limits.Sensitivity != 0.001 {
		t.Fatalf("unexpected zoom limits: %+v", limits)
	}
	if cfg.Notes.DefaultText != "New note" {
		t.Fatalf("unexpected default text: %q", cfg.Notes.DefaultText)
	}
	if cfg.PaletteCount() != 5 {
		t.Fatalf("unexpected palette count: %d", cfg.PaletteCount())
	}
	if cfg.StoreDriver() != "memory" {
		t.Fatalf("unexpected store driver: %q", cfg.StoreDriver())
	}
	if cfg.LogLevel() != logger.INFO {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel())
	}
}

func TestLoadFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".config", "noteboard")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte(`
[viewport]
max_scale = 3

[palette]
count = 8

[store]
driver = " SQLite "

[logging]
level = "debug"

[dropfolder]
enabled = true
path = "drops"
`)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.ZoomLimits(); got.MaxScale != 3 || got.MinScale != 0.1 {
		t.Fatalf("unexpected zoom limits: %+v", got)
	}
	if cfg.PaletteCount() != 8 {
		t.Fatalf("unexpected palette count: %d", cfg.PaletteCount())
	}
	if cfg.StoreDriver() != "sqlite" {
		t.Fatalf("unexpected store driver: %q", cfg.StoreDriver())
	}
	if cfg.LogLevel() != logger.DEBUG {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel())
	}
	dir, err := cfg.ResolveDropFolder()
	if err != nil {
		t.Fatalf("ResolveDropFolder: %v", err)
	}
	if want := filepath.Join(dataDir, "drops"); dir != want {
		t.Fatalf("unexpected drop folder: got=%q want=%q", dir, want)
	}
}

func TestZoomLimitsRejectsInvertedBounds(t *testing.T) {
	cfg := Default()
	cfg.Viewport.MinScale = 4
	cfg.Viewport.MaxScale = 2
	cfg.Viewport.ZoomSensitivity = -1
	got := cfg.ZoomLimits()
	if got.MinScale != 0.1 || got.MaxScale != 5 || got.Sensitivity != 0.001 {
		t.Fatalf("expected default limits, got %+v", got)
	}
}

func TestResolveDropFolderDisabled(t *testing.T) {
	cfg := Default()
	dir, err := cfg.ResolveDropFolder()
	if err != nil {
		t.Fatalf("ResolveDropFolder: %v", err)
	}
	if dir != "" {
		t.Fatalf("expected disabled drop folder, got %q", dir)
	}
}
