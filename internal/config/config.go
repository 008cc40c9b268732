// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Plot    PlotConfig    `yaml:"plot"`
	Library LibraryConfig `yaml:"library"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// DomainConfig is a rectangular plot domain.
type DomainConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

// PlotConfig holds the surface settings used at startup.
type PlotConfig struct {
	Resolution  int          `yaml:"resolution"` // Grid segments per side
	Function    string       `yaml:"function"`
	Dialect     string       `yaml:"dialect"` // "auto", "expr" or "lisp"
	Domain      DomainConfig `yaml:"domain"`
	ShowGrid    bool         `yaml:"show_grid"`
	ShowNumbers bool         `yaml:"show_numbers"`
}

// LibraryConfig holds the saved-functions store location.
type LibraryConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds the output directory for exports and screenshots.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "xgraphix",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Plot: PlotConfig{
			Resolution:  40,
			Function:    "x*x + y*y",
			Dialect:     "auto",
			Domain:      DomainConfig{XMin: -2, XMax: 2, YMin: -2, YMax: 2},
			ShowGrid:    true,
			ShowNumbers: true,
		},
		Library: LibraryConfig{
			Path: filepath.Join(ConfigDir(), "functions.yaml"),
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Plot.Resolution < 1 {
		errs = append(errs, fmt.Errorf("plot resolution %d must be at least 1", c.Plot.Resolution))
	}
	switch c.Plot.Dialect {
	case "auto", "expr", "lisp":
	default:
		errs = append(errs, fmt.Errorf("unknown plot dialect %q", c.Plot.Dialect))
	}
	return errors.Join(errs...)
}
