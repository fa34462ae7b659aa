package dashboard

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tkok3/AMS/src/input"
	"github.com/tkok3/AMS/src/selectivity"
)

const (
	minChartWidth  = 300
	maxChartWidth  = 4000
	minChartHeight = 200
	maxChartHeight = 3000
)

// parseParams reads pmax, perm and x1 from the query, falling back to defaults.
func parseParams(q url.Values, defaults selectivity.Input) (selectivity.Input, error) {
	return input.Merge(func(f string) (string, bool) {
		if !q.Has(f) {
			return "", false
		}
		return q.Get(f), true
	}, defaults)
}

// parseSize reads optional w/h query values and clamps them to sane bounds.
func parseSize(q url.Values, defW, defH int) (int, int, error) {
	w, err := intParam(q, "w", defW)
	if err != nil {
		return 0, 0, err
	}
	h, err := intParam(q, "h", defH)
	if err != nil {
		return 0, 0, err
	}
	return clamp(w, minChartWidth, maxChartWidth), clamp(h, minChartHeight, maxChartHeight), nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	raw := q.Get(key)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &input.InputError{Field: key, Raw: raw, Err: errors.New("not an integer")}
	}
	return v, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// classify maps an error to an HTTP status and a metrics outcome.
func classify(err error) (int, string) {
	var ie *input.InputError
	switch {
	case errors.As(err, &ie):
		return http.StatusBadRequest, OutcomeInputError
	case errors.Is(err, selectivity.ErrDomain):
		return http.StatusUnprocessableEntity, OutcomeDomainError
	default:
		return http.StatusInternalServerError, ""
	}
}

func errorKind(outcome string) string {
	switch outcome {
	case OutcomeInputError:
		return "input"
	case OutcomeDomainError:
		return "domain"
	}
	return "internal"
}
