package pairpot

import "math"

const (
	mm3Repulsion  = 1.84e5
	mm3Steepness  = 12.0
	mm3Dispersion = 2.25
)

// MM3Buckingham is the MM3 exp-6 form ε[1.84e5·exp(−12d/σ) − 2.25(σ/d)^6],
// mixed the same way as [LennardJones].
type MM3Buckingham struct {
	Sigma   []float64
	Epsilon []float64
}

func NewMM3Buckingham(sigma, epsilon []float64) (*MM3Buckingham, error) {
	if err := checkPair(sigma, epsilon); err != nil {
		return nil, err
	}
	return &MM3Buckingham{Sigma: sigma, Epsilon: epsilon}, nil
}

func (p *MM3Buckingham) Name() string { return "mm3" }

func (p *MM3Buckingham) Evaluate(center, other int, d float64, withDerivative bool) (float64, float64) {
	sigma := 0.5 * (p.Sigma[center] + p.Sigma[other])
	epsilon := math.Sqrt(p.Epsilon[center] * p.Epsilon[other])

	rep := mm3Repulsion * math.Exp(-mm3Steepness*d/sigma)
	x := sigma / d
	x *= x
	disp := mm3Dispersion * x * x * x

	e := epsilon * (rep - disp)
	if !withDerivative {
		return e, 0
	}
	return e, epsilon / d * (-mm3Steepness/sigma*rep + 6.0/d*disp)
}
