package config

import (
	"fmt"
	"strings"

	"github.com/tkok3/AMS/src/logging"
	"github.com/tkok3/AMS/src/selectivity"
)

// FieldError is a validation failure for one dotted config path.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

// ValidationError collects every FieldError found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "configuration validation failed"
	case 1:
		return "configuration validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", fe.Error())
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a ValidationError listing all problems.
func Validate(cfg *Config) error {
	var errs []FieldError
	if !logging.ValidLevel(cfg.LogLevel) {
		errs = append(errs, FieldError{"log_level", fmt.Sprintf("unknown level %q", cfg.LogLevel)})
	}
	errs = append(errs, validateParams("web.defaults", cfg.Web.Defaults)...)
	errs = append(errs, validateParams("desktop.defaults", cfg.Desktop.Defaults)...)
	if strings.TrimSpace(cfg.Web.ListenAddress) == "" {
		errs = append(errs, FieldError{"web.listen_address", "must not be empty"})
	}
	if cfg.Web.ReadTimeout < 0 {
		errs = append(errs, FieldError{"web.read_timeout", "must not be negative"})
	}
	if cfg.Web.WriteTimeout < 0 {
		errs = append(errs, FieldError{"web.write_timeout", "must not be negative"})
	}
	if cfg.Web.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{"web.shutdown_timeout", "must not be negative"})
	}
	if cfg.Chart.Width < 200 || cfg.Chart.Width > 8000 {
		errs = append(errs, FieldError{"chart.width", "must be within [200, 8000]"})
	}
	if cfg.Chart.Height < 150 || cfg.Chart.Height > 6000 {
		errs = append(errs, FieldError{"chart.height", "must be within [150, 6000]"})
	}
	errs = append(errs, validateRange("sliders.mole_fraction", cfg.Sliders.MoleFraction, 0, 1)...)
	// The permeability slider may start at 1; that position yields a domain error the UI reports.
	errs = append(errs, validateRange("sliders.relative_permeability", cfg.Sliders.RelativePermeability, 1, 1e9)...)
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateParams(field string, in selectivity.Input) []FieldError {
	if err := in.Validate(); err != nil {
		return []FieldError{{field, err.Error()}}
	}
	return nil
}

func validateRange(field string, r Range, lo, hi float64) []FieldError {
	var errs []FieldError
	if r.Min < lo || r.Max > hi {
		errs = append(errs, FieldError{field, fmt.Sprintf("range must lie within [%g, %g]", lo, hi)})
	}
	if r.Max <= r.Min {
		errs = append(errs, FieldError{field, "max must be greater than min"})
	}
	if r.Step <= 0 || r.Step > r.Max-r.Min {
		errs = append(errs, FieldError{field + ".step", "must be positive and no larger than the range"})
	}
	return errs
}
