package forcefield

import (
	"math"

	"github.com/san-kum/pairpot/internal/pairpot"
)

// Sample is one point of a distance scan. Deriv is dE/dd, not divided by d.
type Sample struct {
	D      float64
	Energy float64
	Deriv  float64
}

// Scan evaluates the pair center-other at n evenly spaced distances in
// [dmin, dmax], smoothing included when the potential has it enabled.
func Scan(pot *pairpot.PairPotential, center, other int, dmin, dmax float64, n int) []Sample {
	if n < 2 {
		n = 2
	}
	out := make([]Sample, n)
	step := (dmax - dmin) / float64(n-1)
	for i := range out {
		d := dmin + float64(i)*step
		e, g := pot.Pair(center, other, d, true)
		out[i] = Sample{D: d, Energy: e, Deriv: g * d}
	}
	return out
}

// Check compares an analytic derivative with a central difference.
type Check struct {
	Family   string
	D        float64
	Analytic float64
	Numeric  float64
	RelError float64
}

// CheckDerivative compares dE/dd from f against (E(d+h) − E(d−h))/2h.
func CheckDerivative(f pairpot.Family, center, other int, d, h float64) Check {
	_, g := f.Evaluate(center, other, d, true)
	ep, _ := f.Evaluate(center, other, d+h, false)
	em, _ := f.Evaluate(center, other, d-h, false)
	c := Check{
		Family:   f.Name(),
		D:        d,
		Analytic: g * d,
		Numeric:  (ep - em) / (2 * h),
	}
	c.RelError = math.Abs(c.Analytic-c.Numeric) / math.Max(1, math.Abs(c.Numeric))
	return c
}

// Minimum returns the scan sample with the lowest energy.
func Minimum(samples []Sample) Sample {
	best := samples[0]
	for _, s := range samples[1:] {
		if s.Energy < best.Energy {
			best = s
		}
	}
	return best
}
