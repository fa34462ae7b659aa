package config

import (
	"time"

	"github.com/tkok3/AMS/src/selectivity"
)

const (
	DefaultLogLevel        = "info"
	DefaultListenAddress   = "127.0.0.1:8050"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	DefaultChartWidth  = 1200
	DefaultChartHeight = 520
)

// DefaultWebParams are the dashboard's initial slider values.
var DefaultWebParams = selectivity.Input{PMaxExponent: 4, RelativePermeability: 300, MoleFraction: 0.01}

// DefaultDesktopParams are the desktop app's initial field values.
var DefaultDesktopParams = selectivity.Input{PMaxExponent: 3, RelativePermeability: 300, MoleFraction: 0.01}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. A zero Defaults block is replaced as a whole so a
// partially written block is reported by Validate instead of being silently patched.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Web.Defaults == (selectivity.Input{}) {
		cfg.Web.Defaults = DefaultWebParams
	}
	if cfg.Web.ListenAddress == "" {
		cfg.Web.ListenAddress = DefaultListenAddress
	}
	if cfg.Web.ReadTimeout == 0 {
		cfg.Web.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Web.WriteTimeout == 0 {
		cfg.Web.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Web.ShutdownTimeout == 0 {
		cfg.Web.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Desktop.Defaults == (selectivity.Input{}) {
		cfg.Desktop.Defaults = DefaultDesktopParams
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = DefaultChartWidth
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = DefaultChartHeight
	}
	if cfg.Sliders.MoleFraction == (Range{}) {
		cfg.Sliders.MoleFraction = Range{Min: 0, Max: 1, Step: 0.01}
	}
	if cfg.Sliders.RelativePermeability == (Range{}) {
		cfg.Sliders.RelativePermeability = Range{Min: 1, Max: 1000, Step: 1}
	}
}
