package pairpot

import "math"

// LennardJones is the 12-6 potential 4ε[(σ/d)^12 − (σ/d)^6] with
// Lorentz-Berthelot mixing: arithmetic mean σ, geometric mean ε.
type LennardJones struct {
	Sigma   []float64
	Epsilon []float64
}

func NewLennardJones(sigma, epsilon []float64) (*LennardJones, error) {
	if err := checkPair(sigma, epsilon); err != nil {
		return nil, err
	}
	return &LennardJones{Sigma: sigma, Epsilon: epsilon}, nil
}

func (p *LennardJones) Name() string { return "lj" }

func (p *LennardJones) Evaluate(center, other int, d float64, withDerivative bool) (float64, float64) {
	sigma := 0.5 * (p.Sigma[center] + p.Sigma[other])
	epsilon := math.Sqrt(p.Epsilon[center] * p.Epsilon[other])

	// x6 = (σ/d)^6
	x6 := sigma / d
	x6 *= x6
	x6 *= x6 * x6

	e := 4.0 * epsilon * x6 * (x6 - 1.0)
	if !withDerivative {
		return e, 0
	}
	return e, 24.0 * epsilon / (d * d) * x6 * (1.0 - 2.0*x6)
}
