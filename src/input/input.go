// Package input converts raw text from UI controls, query strings and flags into engine
// parameters. Failures are *InputError and never reach the selectivity engine.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tkok3/AMS/src/selectivity"
)

// Field names used in InputError and by the front-ends.
const (
	FieldPMax = "pmax"
	FieldPerm = "perm"
	FieldX1   = "x1"
)

// ErrNotFinite is wrapped when text parses but is NaN or infinite.
var ErrNotFinite = errors.New("not a finite number")

// InputError reports raw text that could not be turned into a finite float.
type InputError struct {
	Field string
	Raw   string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Raw, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseFloat parses one field. Surrounding spaces are ignored and a decimal comma is accepted.
func ParseFloat(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InputError{Field: field, Raw: raw, Err: errors.New("empty value")}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, &InputError{Field: field, Raw: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Raw: raw, Err: ErrNotFinite}
	}
	return v, nil
}

// Parse converts the three raw fields into an engine Input. The first bad field wins.
func Parse(pmax, perm, x1 string) (selectivity.Input, error) {
	var in selectivity.Input
	var err error
	if in.PMaxExponent, err = ParseFloat(FieldPMax, pmax); err != nil {
		return selectivity.Input{}, err
	}
	if in.RelativePermeability, err = ParseFloat(FieldPerm, perm); err != nil {
		return selectivity.Input{}, err
	}
	if in.MoleFraction, err = ParseFloat(FieldX1, x1); err != nil {
		return selectivity.Input{}, err
	}
	return in, nil
}

// Getter returns the raw value for a field and whether it was supplied.
type Getter func(field string) (string, bool)

// Merge parses the supplied fields and keeps defaults for the missing ones.
func Merge(get Getter, defaults selectivity.Input) (selectivity.Input, error) {
	in := defaults
	targets := []struct {
		field string
		dst   *float64
	}{
		{FieldPMax, &in.PMaxExponent},
		{FieldPerm, &in.RelativePermeability},
		{FieldX1, &in.MoleFraction},
	}
	for _, t := range targets {
		raw, ok := get(t.field)
		if !ok {
			continue
		}
		v, err := ParseFloat(t.field, raw)
		if err != nil {
			return selectivity.Input{}, err
		}
		*t.dst = v
	}
	return in, nil
}

// Format renders a parameter the way the input fields display it.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
