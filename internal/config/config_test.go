package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 400 || cfg.BorderWidth != 1 {
		t.Fatalf("unexpected default geometry %dx%d border %d", cfg.Width, cfg.Height, cfg.BorderWidth)
	}
	if cfg.Title != ProgramName {
		t.Fatalf("title = %q, want %q", cfg.Title, ProgramName)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no source file, got %q", res.File)
	}
	if res.Config.GraphicsContexts != 3 {
		t.Fatalf("graphics_contexts = %d, want 3", res.Config.GraphicsContexts)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != path {
		t.Fatalf("File = %q, want %q", res.File, path)
	}
	if res.Config.Placement != PlacementOrigin {
		t.Fatalf("placement = %q, want %q", res.Config.Placement, PlacementOrigin)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"title: Demo",
		"width: 320",
		"height: 200",
		"graphics_contexts: 1",
		"fonts: [9x15]",
		"placement: center",
		"icon: false",
		"log_level: debug",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Title != "Demo" || cfg.Width != 320 || cfg.Height != 200 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.GraphicsContexts != 1 {
		t.Fatalf("graphics_contexts = %d, want 1", cfg.GraphicsContexts)
	}
	if len(cfg.Fonts) != 1 || cfg.Fonts[0] != "9x15" {
		t.Fatalf("fonts = %v, want [9x15]", cfg.Fonts)
	}
	if cfg.Placement != PlacementCenter || cfg.Icon {
		t.Fatalf("placement/icon not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("level = %v, want debug", cfg.SlogLevel())
	}
	// Keys not present keep their defaults.
	if cfg.BorderWidth != 1 {
		t.Fatalf("border_width = %d, want 1", cfg.BorderWidth)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "hotkey: super+t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadFromPath_ValidationErrorHasPosition(t *testing.T) {
	path := writeConfig(t, "title: ok\ngraphics_contexts: 2\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "graphics_contexts" {
		t.Fatalf("path = %q, want graphics_contexts", verr.Path)
	}
	if verr.File != path || verr.Line != 2 {
		t.Fatalf("position = %s:%d, want %s:2", verr.File, verr.Line, path)
	}
	if !strings.Contains(err.Error(), "graphics_contexts must be 1 or 3") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"empty title", func(c *Config) { c.Title = "  " }, "title"},
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"huge height", func(c *Config) { c.Height = 40000 }, "height"},
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"two contexts", func(c *Config) { c.GraphicsContexts = 2 }, "graphics_contexts"},
		{"no fonts", func(c *Config) { c.Fonts = nil }, "fonts"},
		{"blank font", func(c *Config) { c.Fonts = []string{"fixed", ""} }, "fonts[1]"},
		{"bad placement", func(c *Config) { c.Placement = "corner" }, "placement"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
		got, err := DefaultConfigPath()
		if err != nil {
			t.Fatalf("DefaultConfigPath() error: %v", err)
		}
		if got != "/tmp/custom.yaml" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("xdg config home", func(t *testing.T) {
		td := t.TempDir()
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", td)
		got, err := DefaultConfigPath()
		if err != nil {
			t.Fatalf("DefaultConfigPath() error: %v", err)
		}
		want := filepath.Join(td, "typicalx11app", "config.yaml")
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		got, err := DefaultConfigPath()
		if err != nil {
			t.Fatalf("DefaultConfigPath() error: %v", err)
		}
		want := filepath.Join(home, ".config", "typicalx11app", "config.yaml")
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
