package forcefield

import (
	"math"
	"testing"

	"github.com/san-kum/pairpot/internal/pairpot"
)

func TestScanFindsMinimum(t *testing.T) {
	lj, _ := pairpot.NewLennardJones([]float64{1, 1}, []float64{1, 1})
	pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(5))

	samples := Scan(pot, 0, 1, 0.9, 2.0, 1101)
	if len(samples) != 1101 {
		t.Fatalf("expected 1101 samples, got %d", len(samples))
	}
	m := Minimum(samples)
	if math.Abs(m.D-math.Pow(2, 1.0/6.0)) > 1e-3 {
		t.Errorf("expected minimum near 1.1225, got %g", m.D)
	}
	if math.Abs(m.Energy+1) > 1e-5 {
		t.Errorf("expected energy near -1, got %g", m.Energy)
	}
	if math.Abs(m.Deriv) > 0.1 {
		t.Errorf("expected small derivative, got %g", m.Deriv)
	}
}

func TestScanBeyondCutoff(t *testing.T) {
	lj, _ := pairpot.NewLennardJones([]float64{1, 1}, []float64{1, 1})
	pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(2), pairpot.WithSmoothing(true))

	samples := Scan(pot, 0, 1, 1.5, 3.0, 4)
	for _, s := range samples[2:] {
		if s.Energy != 0 || s.Deriv != 0 {
			t.Errorf("d=%g: expected zero beyond cutoff, got %g %g", s.D, s.Energy, s.Deriv)
		}
	}
}

func TestCheckDerivative(t *testing.T) {
	ei, _ := pairpot.NewElectrostatic([]float64{1, -1}, 0.3)
	for _, d := range []float64{1, 2.5, 6} {
		c := CheckDerivative(ei, 0, 1, d, 1e-5)
		if c.Family != "ei" || c.D != d {
			t.Errorf("unexpected check header %+v", c)
		}
		if c.RelError > 1e-7 {
			t.Errorf("d=%g: relative error %g", d, c.RelError)
		}
	}
}
