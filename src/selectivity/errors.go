package selectivity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is the sentinel wrapped by every DomainError.
var ErrDomain = errors.New("selectivity: domain error")

// DomainError reports an input or intermediate value outside the range where the
// closed-form solution is defined. Index is the sweep sample (-1 for input checks).
type DomainError struct {
	Param  string
	Index  int
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("selectivity: domain error at sample %d (%s=%g): %s", e.Index, e.Param, e.Value, e.Reason)
	}
	return fmt.Sprintf("selectivity: invalid %s=%g: %s", e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func inputError(param string, v float64, reason string) *DomainError {
	return &DomainError{Param: param, Index: -1, Value: v, Reason: reason}
}

func sampleError(param string, i int, v float64, reason string) *DomainError {
	return &DomainError{Param: param, Index: i, Value: v, Reason: reason}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
