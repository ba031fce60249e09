package forcefield

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/pairpot/internal/pairpot"
)

var ErrNoVolume = errors.New("forcefield: pressure needs a fully periodic cell")

type Result struct {
	Energy   float64
	Gradient []float64
	Virial   pairpot.Virial
}

func newResult(n int) *Result {
	return &Result{Gradient: make([]float64, 3*n)}
}

func (r *Result) add(other *Result) {
	r.Energy += other.Energy
	for i, g := range other.Gradient {
		r.Gradient[i] += g
	}
	r.Virial.Add(&other.Virial)
}

// Force returns minus the gradient of particle i.
func (r *Result) Force(i int) [3]float64 {
	return [3]float64{-r.Gradient[3*i], -r.Gradient[3*i+1], -r.Gradient[3*i+2]}
}

// NetForce sums all forces; it vanishes for any pair potential.
func (r *Result) NetForce() [3]float64 {
	var f [3]float64
	for i, g := range r.Gradient {
		f[i%3] -= g
	}
	return f
}

// VirialMatrix returns the virial as a symmetric gonum matrix.
func (r *Result) VirialMatrix() *mat.SymDense {
	data := make([]float64, 9)
	copy(data, r.Virial[:])
	return mat.NewSymDense(3, data)
}

// PrincipalVirial returns the eigenvalues of the virial in ascending order.
func (r *Result) PrincipalVirial() ([3]float64, bool) {
	var eig mat.EigenSym
	var out [3]float64
	if !eig.Factorize(r.VirialMatrix(), false) {
		return out, false
	}
	copy(out[:], eig.Values(nil))
	return out, true
}

// Pressure returns the configurational pressure −Tr(W)/3V.
func (r *Result) Pressure(volume float64) (float64, error) {
	if volume <= 0 {
		return 0, ErrNoVolume
	}
	return -r.Virial.Trace() / (3 * volume), nil
}
