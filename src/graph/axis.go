package graph

import (
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// DecadeTicks returns ticks at every integer decade in [minExp, maxExp] on a log10 axis.
// Endpoints are added when the span holds fewer than two decades so the axis stays labelled.
func DecadeTicks(minExp, maxExp float64) []chart.Tick {
	if math.IsNaN(minExp) || math.IsNaN(maxExp) || maxExp <= minExp {
		return nil
	}
	var ticks []chart.Tick
	for k := math.Ceil(minExp); k <= maxExp+1e-9; k++ {
		ticks = append(ticks, chart.Tick{Value: k, Label: FormatDecade(k)})
	}
	if len(ticks) < 2 {
		ticks = []chart.Tick{
			{Value: minExp, Label: FormatDecade(minExp)},
			{Value: maxExp, Label: FormatDecade(maxExp)},
		}
	}
	return ticks
}

// FormatDecade labels a log10 axis position with the linear value it stands for.
func FormatDecade(exp float64) string {
	if exp == math.Trunc(exp) {
		k := int(exp)
		switch {
		case k >= 0 && k <= 4:
			return strconv.FormatFloat(math.Pow(10, exp), 'f', 0, 64)
		case k < 0 && k >= -3:
			return strconv.FormatFloat(math.Pow(10, exp), 'f', -k, 64)
		default:
			return fmt.Sprintf("1e%d", k)
		}
	}
	return strconv.FormatFloat(math.Pow(10, exp), 'g', 3, 64)
}

// LinearTicks returns n evenly spaced ticks from min to max inclusive.
func LinearTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	step := (max - min) / float64(n-1)
	ticks := make([]chart.Tick, n)
	for i := range ticks {
		v := min + float64(i)*step
		if i == n-1 {
			v = max
		}
		v = math.Round(v*1e6) / 1e6
		ticks[i] = chart.Tick{Value: v, Label: FormatLinear(v)}
	}
	return ticks
}

// FormatLinear gives a compact label for a linear axis value.
func FormatLinear(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// Log10 maps values to log10 space. Values must be positive.
func Log10(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Log10(v)
	}
	return out
}

// ClampLog10 maps values to log10 space clamped to [lo, hi]. Non-positive values land on lo.
func ClampLog10(vs []float64, lo, hi float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		e := lo
		if v > 0 {
			e = math.Log10(v)
		}
		if e < lo {
			e = lo
		}
		if e > hi {
			e = hi
		}
		out[i] = e
	}
	return out
}
