// Package uihelpers holds the desktop app's pure helpers so they can be tested without a window.
package uihelpers

import (
	"errors"
	"fmt"

	"github.com/tkok3/AMS/src/input"
	"github.com/tkok3/AMS/src/selectivity"
)

// ComputeChartDimensions applies the width/height clamp rules used for the figure.
// Input: desired raw width (e.g. canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	if w > 2400 {
		w = 2400
	}
	h := int(float64(w) * 0.52)
	if h < 360 {
		h = 360
	}
	if h > 720 {
		h = 720
	}
	return w, h
}

// InputError is returned for entry text that is not a finite number.
type InputError = input.InputError

// ParseField parses a single entry.
func ParseField(name, raw string) (float64, error) {
	return input.ParseFloat(name, raw)
}

// ParseParams turns the three entry texts into engine parameters.
func ParseParams(pmax, perm, x1 string) (selectivity.Input, error) {
	return input.Parse(pmax, perm, x1)
}

// FormatParam is the text an entry shows for a stored value.
func FormatParam(v float64) string { return input.Format(v) }

// FieldLabel is the caption shown next to each entry.
func FieldLabel(field string) string {
	switch field {
	case input.FieldPMax:
		return "pMax"
	case input.FieldPerm:
		return "perm"
	case input.FieldX1:
		return "x1"
	}
	return field
}

// StatusMessage is the inline warning shown while the last valid graph stays on screen.
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return fmt.Sprintf("%s: %q is not a number (showing last valid graph)", FieldLabel(ie.Field), ie.Raw)
	}
	var de *selectivity.DomainError
	if errors.As(err, &de) {
		if de.Index < 0 {
			return fmt.Sprintf("%s %s (showing last valid graph)", paramCaption(de.Param), de.Reason)
		}
		return fmt.Sprintf("%s at sample %d (showing last valid graph)", de.Reason, de.Index)
	}
	return err.Error()
}

func paramCaption(p string) string {
	switch p {
	case "p_max_exponent":
		return "pMax"
	case "relative_permeability":
		return "perm"
	case "mole_fraction":
		return "x1"
	}
	return p
}
