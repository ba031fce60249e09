package pairpot

import "math"

// Smooth returns the cutoff envelope exp(1/(d−c)) for d < c and 0 beyond.
// Every derivative of the envelope vanishes at the cutoff, so multiplying
// it into a potential removes the truncation step in energy and force.
func Smooth(d, cutoff float64) float64 {
	if d >= cutoff {
		return 0
	}
	return math.Exp(1.0 / (d - cutoff))
}

// SmoothDerivative returns the envelope and its derivative with respect to d.
func SmoothDerivative(d, cutoff float64) (float64, float64) {
	if d >= cutoff {
		return 0, 0
	}
	x := d - cutoff
	h := math.Exp(1.0 / x)
	return h, -h / (x * x)
}
