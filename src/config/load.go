package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tkok3/AMS/src/logging"
)

// Load reads a YAML file, applies defaults and validates the result.
// An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes, applies defaults and validates. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes as io.EOF and means "all defaults".
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithEnvOverrides is Load followed by AMS_* environment overrides and re-validation.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg, os.Getenv)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration invalid after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("AMS_LISTEN_ADDRESS"); v != "" {
		cfg.Web.ListenAddress = v
	}
	if v := getenv("AMS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("AMS_P_MAX_EXPONENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logging.Warnf("ignoring AMS_P_MAX_EXPONENT=%q: %v", v, err)
			return
		}
		cfg.Web.Defaults.PMaxExponent = f
		cfg.Desktop.Defaults.PMaxExponent = f
	}
}
