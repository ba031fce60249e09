package pairpot

// Family is a pair potential formula bound to its per-particle parameters.
//
// Evaluate returns the pair energy at distance d. When withDerivative is
// set it also returns dE/dd divided by d; otherwise the second result is
// zero and no derivative work is done.
type Family interface {
	Name() string
	Evaluate(center, other int, d float64, withDerivative bool) (energy, gOverD float64)
}

func checkPair(a, b []float64) error {
	if len(a) == 0 || len(a) != len(b) {
		return ErrParameterMismatch
	}
	return nil
}
