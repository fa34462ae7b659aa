// Package config holds the settings shared by the dashboard and the desktop app: the initial
// slider/field values, slider ranges, chart size and server options. Values come from an
// optional YAML file, then AMS_* environment overrides, then validation.
package config

import (
	"time"

	"github.com/tkok3/AMS/src/selectivity"
)

// Config is the root configuration document.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Web      WebConfig     `yaml:"web"`
	Desktop  DesktopConfig `yaml:"desktop"`
	Chart    ChartConfig   `yaml:"chart"`
	Sliders  SliderConfig  `yaml:"sliders"`
}

// WebConfig configures the dashboard server.
type WebConfig struct {
	Defaults        selectivity.Input `yaml:"defaults"`
	ListenAddress   string            `yaml:"listen_address"`
	ReadTimeout     time.Duration     `yaml:"read_timeout"`
	WriteTimeout    time.Duration     `yaml:"write_timeout"`
	ShutdownTimeout time.Duration     `yaml:"shutdown_timeout"`
}

// DesktopConfig configures the desktop app.
type DesktopConfig struct {
	Defaults selectivity.Input `yaml:"defaults"`
}

// ChartConfig sets the rendered figure size in pixels.
type ChartConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Dark   bool `yaml:"dark"`
}

// Range describes one slider.
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// SliderConfig holds the dashboard slider ranges.
type SliderConfig struct {
	MoleFraction         Range `yaml:"mole_fraction"`
	RelativePermeability Range `yaml:"relative_permeability"`
}

// Clone returns a deep copy (Config has no reference fields, so a value copy suffices).
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
