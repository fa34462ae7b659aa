// Package selectivity computes permeate composition and separation selectivity for a
// two-component feed across a log-spaced pressure-ratio sweep.
//
// For each component with feed mole fraction x, relative permeability α and pressure
// ratio p the permeate mole fraction y is the smaller root of
//
//	y² - p·a·y + α·x·p/(α-1) = 0,  a = x + 1/p + 1/(α-1)
//
// i.e. y = p/2 · (a - sqrt(a² - b)) with b = 4αx/((α-1)p). The larger root is not physical.
//
// Compute is a pure function; results are freshly allocated on every call and the
// package holds no state, so it is safe for concurrent use.
package selectivity

import "math"

const (
	// Samples is the number of points in the pressure-ratio sweep.
	Samples = 100
	// MinExponent is the decade the sweep starts at (p = 10^-1).
	MinExponent = -1.0
)

// Input holds the three scalar parameters of one computation.
type Input struct {
	PMaxExponent         float64 `json:"p_max_exponent" yaml:"p_max_exponent"`
	RelativePermeability float64 `json:"relative_permeability" yaml:"relative_permeability"`
	MoleFraction         float64 `json:"mole_fraction" yaml:"mole_fraction"`
}

// Result is the pressure sweep plus one permeate mole fraction curve per component.
// Curves[0] belongs to component 1 (feed fraction MoleFraction), Curves[1] to
// component 2 (1 - MoleFraction). All slices are index-aligned with Sweep.
type Result struct {
	Sweep  []float64
	Curves [2][]float64
}

// Validate checks the input invariants without computing anything.
func (in Input) Validate() error {
	if !finite(in.PMaxExponent) {
		return inputError("p_max_exponent", in.PMaxExponent, "must be finite")
	}
	if in.PMaxExponent <= MinExponent {
		return inputError("p_max_exponent", in.PMaxExponent, "must be greater than -1")
	}
	if !finite(in.RelativePermeability) {
		return inputError("relative_permeability", in.RelativePermeability, "must be finite")
	}
	if in.RelativePermeability <= 1 {
		return inputError("relative_permeability", in.RelativePermeability, "must be greater than 1")
	}
	if math.IsNaN(in.MoleFraction) || in.MoleFraction < 0 || in.MoleFraction > 1 {
		return inputError("mole_fraction", in.MoleFraction, "must be within [0, 1]")
	}
	return nil
}

// Sweep returns n log-uniform points from 10^minExp to 10^maxExp. The last exponent is
// pinned to maxExp so the upper endpoint is exact.
func Sweep(minExp, maxExp float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	p := make([]float64, n)
	if n == 1 {
		p[0] = math.Pow(10, minExp)
		return p
	}
	step := (maxExp - minExp) / float64(n-1)
	for i := 0; i < n-1; i++ {
		p[i] = math.Pow(10, minExp+float64(i)*step)
	}
	p[n-1] = math.Pow(10, maxExp)
	return p
}

// Compute evaluates both component curves over the sweep. Any invalid input or
// undefined sample aborts the whole call with a *DomainError; no partial result is returned.
func Compute(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := Sweep(MinExponent, in.PMaxExponent, Samples)
	for i, v := range p {
		if !finite(v) || v <= 0 {
			return nil, sampleError("pressure_ratio", i, v, "sweep overflowed")
		}
		if i > 0 && v <= p[i-1] {
			return nil, sampleError("pressure_ratio", i, v, "sweep not strictly increasing")
		}
	}
	perm := in.RelativePermeability
	xs := [2]float64{in.MoleFraction, 1 - in.MoleFraction}
	res := &Result{Sweep: p}
	for c, x := range xs {
		ys := make([]float64, len(p))
		for i, pi := range p {
			a := x + 1/pi + 1/(perm-1)
			b := (4 * perm * x) / ((perm - 1) * pi)
			disc := a*a - b
			if disc < 0 {
				return nil, sampleError("discriminant", i, disc, "negative discriminant")
			}
			y := 0.5 * pi * (a - math.Sqrt(disc))
			if !finite(y) {
				return nil, sampleError("permeate_fraction", i, y, "non-finite value")
			}
			ys[i] = y
		}
		res.Curves[c] = ys
	}
	return res, nil
}

// Selectivity returns Curves[0][i] / Curves[1][i]. A zero denominator is a DomainError.
func (r *Result) Selectivity() ([]float64, error) {
	y1, y2 := r.Curves[0], r.Curves[1]
	if len(y1) != len(y2) {
		return nil, sampleError("selectivity", -1, float64(len(y2)), "curve length mismatch")
	}
	out := make([]float64, len(y1))
	for i := range y1 {
		if y2[i] == 0 {
			return nil, sampleError("selectivity", i, y1[i], "component 2 permeate fraction is zero")
		}
		out[i] = y1[i] / y2[i]
	}
	return out, nil
}

// ComputeWithSelectivity runs Compute and derives the selectivity curve in one call.
func ComputeWithSelectivity(in Input) (*Result, []float64, error) {
	res, err := Compute(in)
	if err != nil {
		return nil, nil, err
	}
	sel, err := res.Selectivity()
	if err != nil {
		return nil, nil, err
	}
	return res, sel, nil
}
