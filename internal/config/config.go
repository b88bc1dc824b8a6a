package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// ProgramName is used as the default window title, icon name and WM_CLASS.
const ProgramName = "TypicalX11App"

// Placement controls where the window is created.
type Placement string

const (
	PlacementOrigin Placement = "origin" // Top-left corner of the root window.
	PlacementCenter Placement = "center" // Centered on the monitor under the pointer.
)

// Size limits imposed by the X protocol (INT16 coordinates).
const (
	maxDimension   = 32767
	maxBorderWidth = 255
)

// Config is the effective application configuration.
type Config struct {
	Title            string    `yaml:"title"`
	Display          string    `yaml:"display"`
	Width            int       `yaml:"width"`
	Height           int       `yaml:"height"`
	BorderWidth      int       `yaml:"border_width"`
	GraphicsContexts int       `yaml:"graphics_contexts"` // 1 or 3
	Fonts            []string  `yaml:"fonts"`             // Tried in order until one opens.
	Placement        Placement `yaml:"placement"`
	Icon             bool      `yaml:"icon"`
	LogLevel         string    `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Title:            ProgramName,
		Width:            640,
		Height:           400,
		BorderWidth:      1,
		GraphicsContexts: 3,
		Fonts:            []string{"fixed", "f*", "9x15", "8x13", "6x13"},
		Placement:        PlacementOrigin,
		Icon:             true,
		LogLevel:         "info",
	}
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title must not be empty")}
	}
	if c.Width < 1 || c.Width > maxDimension {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be between 1 and %d", maxDimension)}
	}
	if c.Height < 1 || c.Height > maxDimension {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be between 1 and %d", maxDimension)}
	}
	if c.BorderWidth < 0 || c.BorderWidth > maxBorderWidth {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be between 0 and %d", maxBorderWidth)}
	}
	if c.GraphicsContexts != 1 && c.GraphicsContexts != 3 {
		return &ValidationError{Path: "graphics_contexts", Err: fmt.Errorf("graphics_contexts must be 1 or 3")}
	}
	if len(c.Fonts) == 0 {
		return &ValidationError{Path: "fonts", Err: fmt.Errorf("fonts must not be empty")}
	}
	for i, name := range c.Fonts {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: fmt.Sprintf("fonts[%d]", i), Err: fmt.Errorf("font name must not be empty")}
		}
	}
	switch c.Placement {
	case PlacementOrigin, PlacementCenter:
	default:
		return &ValidationError{Path: "placement", Err: fmt.Errorf("placement must be one of: origin, center")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// SlogLevel returns the configured level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps a log_level value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}

// ValidationError points at the config key that failed validation and, when
// known, where it was set.
type ValidationError struct {
	Path   string
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
