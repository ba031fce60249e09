package pairpot

import "math"

var twoOverSqrtPi = 2.0 / math.Sqrt(math.Pi)

// Electrostatic is the Coulomb interaction q_i·q_j/d. A positive Alpha
// switches to the real-space part of an Ewald sum, q_i·q_j·erfc(αd)/d;
// the reciprocal part is the caller's business.
type Electrostatic struct {
	Charges []float64
	Alpha   float64
}

func NewElectrostatic(charges []float64, alpha float64) (*Electrostatic, error) {
	if len(charges) == 0 {
		return nil, ErrParameterMismatch
	}
	if alpha < 0 || math.IsNaN(alpha) {
		return nil, ErrParameterBounds
	}
	return &Electrostatic{Charges: charges, Alpha: alpha}, nil
}

func (p *Electrostatic) Name() string { return "ei" }

func (p *Electrostatic) Evaluate(center, other int, d float64, withDerivative bool) (float64, float64) {
	qq := p.Charges[center] * p.Charges[other]

	var pot, x float64
	if p.Alpha > 0 {
		x = p.Alpha * d
		pot = math.Erfc(x) / d
	} else {
		pot = 1.0 / d
	}
	if !withDerivative {
		return qq * pot, 0
	}

	var g float64
	if p.Alpha > 0 {
		g = (-twoOverSqrtPi*p.Alpha*math.Exp(-x*x) - pot) / d
	} else {
		g = -pot / d
	}
	return qq * pot, g * qq / d
}
