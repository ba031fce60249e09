package pairpot

import "math"

const (
	grimmeScale     = 1.1
	grimmeSteepness = 20.0
)

// GrimmeDispersion is the damped dispersion term −1.1·f(d)·C6/d^6 with the
// Fermi damping f(d) = 1/(1+exp(−20(d/R0−1))) of Grimme (2006). R0 is the
// sum of the two radii, C6 the geometric mean.
type GrimmeDispersion struct {
	R0 []float64
	C6 []float64
}

func NewGrimmeDispersion(r0, c6 []float64) (*GrimmeDispersion, error) {
	if err := checkPair(r0, c6); err != nil {
		return nil, err
	}
	return &GrimmeDispersion{R0: r0, C6: c6}, nil
}

func (p *GrimmeDispersion) Name() string { return "grimme" }

func (p *GrimmeDispersion) Evaluate(center, other int, d float64, withDerivative bool) (float64, float64) {
	r0 := p.R0[center] + p.R0[other]
	c6 := math.Sqrt(p.C6[center] * p.C6[other])

	ex := math.Exp(-grimmeSteepness * (d/r0 - 1.0))
	f := 1.0 / (1.0 + ex)
	d6 := d * d * d
	d6 *= d6
	e := grimmeScale * f * c6 / d6

	if !withDerivative {
		return -e, 0
	}
	return -e, e / d * (6.0/d - grimmeSteepness/r0*f*ex)
}
