package pairpot

import (
	"math"
	"testing"
)

func mustLJ(t *testing.T, sigma, epsilon []float64) *LennardJones {
	t.Helper()
	f, err := NewLennardJones(sigma, epsilon)
	if err != nil {
		t.Fatalf("lj: %v", err)
	}
	return f
}

func allFamilies(t *testing.T) []Family {
	t.Helper()
	lj := mustLJ(t, []float64{1.0, 1.4}, []float64{0.8, 1.3})
	mm3, err := NewMM3Buckingham([]float64{3.6, 4.0}, []float64{0.2, 0.35})
	if err != nil {
		t.Fatal(err)
	}
	gr, err := NewGrimmeDispersion([]float64{1.4, 1.7}, []float64{2.0, 5.0})
	if err != nil {
		t.Fatal(err)
	}
	coul, err := NewElectrostatic([]float64{0.8, -1.2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	ewald, err := NewElectrostatic([]float64{0.8, -1.2}, 0.35)
	if err != nil {
		t.Fatal(err)
	}
	return []Family{lj, mm3, gr, coul, ewald}
}

// bisect finds a root of f in [a, b], assuming a sign change.
func bisect(f func(float64) float64, a, b float64) float64 {
	fa := f(a)
	for i := 0; i < 200; i++ {
		m := 0.5 * (a + b)
		fm := f(m)
		if fa*fm <= 0 {
			b = m
		} else {
			a, fa = m, fm
		}
	}
	return 0.5 * (a + b)
}

func TestLennardJonesMinimum(t *testing.T) {
	tests := []struct {
		sigma, epsilon float64
	}{
		{1.0, 1.0},
		{3.4, 0.238},
		{2.5, 0.05},
	}

	for _, tt := range tests {
		lj := mustLJ(t, []float64{tt.sigma, tt.sigma}, []float64{tt.epsilon, tt.epsilon})
		dmin := math.Pow(2, 1.0/6.0) * tt.sigma
		e, g := lj.Evaluate(0, 1, dmin, true)
		if math.Abs(e+tt.epsilon) > 1e-12 {
			t.Errorf("sigma=%g: expected minimum %g, got %g", tt.sigma, -tt.epsilon, e)
		}
		if math.Abs(g) > 1e-12 {
			t.Errorf("sigma=%g: expected zero derivative at minimum, got %g", tt.sigma, g)
		}
	}
}

func TestLennardJonesMixing(t *testing.T) {
	lj := mustLJ(t, []float64{1.0, 3.0}, []float64{1.0, 4.0})
	// mixed sigma 2, epsilon 2
	e, _ := lj.Evaluate(0, 1, 2.0, false)
	if math.Abs(e) > 1e-12 {
		t.Errorf("expected zero energy at d=sigma, got %g", e)
	}
	e, _ = lj.Evaluate(0, 1, 2.0*math.Pow(2, 1.0/6.0), false)
	if math.Abs(e+2.0) > 1e-12 {
		t.Errorf("expected -2, got %g", e)
	}
}

func TestMM3Minimum(t *testing.T) {
	mm3, err := NewMM3Buckingham([]float64{1.0, 1.0}, []float64{1.0, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	dmin := bisect(func(d float64) float64 {
		_, g := mm3.Evaluate(0, 1, d, true)
		return g
	}, 0.9, 1.2)

	if math.Abs(dmin-1.00098093) > 1e-7 {
		t.Errorf("expected minimum near 1.00098093, got %.10f", dmin)
	}
	e, g := mm3.Evaluate(0, 1, dmin, true)
	if math.Abs(e+1.11949741) > 1e-7 {
		t.Errorf("expected minimum energy -1.11949741, got %.10f", e)
	}
	if math.Abs(g) > 1e-9 {
		t.Errorf("expected zero derivative, got %g", g)
	}
}

func TestGrimmeMinimum(t *testing.T) {
	gr, err := NewGrimmeDispersion([]float64{1.5, 1.5}, []float64{1.0, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	dmin := bisect(func(d float64) float64 {
		_, g := gr.Evaluate(0, 1, d, true)
		return g
	}, 2.5, 3.5)

	if math.Abs(dmin-3.13654384) > 1e-6 {
		t.Errorf("expected minimum near 3.13654384, got %.10f", dmin)
	}
	e, _ := gr.Evaluate(0, 1, dmin, true)
	if math.Abs(e+8.237787e-4) > 1e-9 {
		t.Errorf("expected minimum energy -8.237787e-4, got %g", e)
	}
}

func TestElectrostaticCoulomb(t *testing.T) {
	ei, err := NewElectrostatic([]float64{1.0, -1.0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	e, g := ei.Evaluate(0, 1, 2.0, true)
	if math.Abs(e+0.5) > 1e-15 {
		t.Errorf("expected -0.5, got %g", e)
	}
	// dE/dd = 1/d^2 = 0.25, divided by d
	if math.Abs(g-0.125) > 1e-15 {
		t.Errorf("expected 0.125, got %g", g)
	}
}

func TestElectrostaticDamped(t *testing.T) {
	ei, err := NewElectrostatic([]float64{2.0, 1.5}, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	d := 3.0
	e, _ := ei.Evaluate(0, 1, d, false)
	expected := 3.0 * math.Erfc(0.4*d) / d
	if math.Abs(e-expected) > 1e-14 {
		t.Errorf("expected %g, got %g", expected, e)
	}
}

func TestFamiliesEnergyOnly(t *testing.T) {
	for _, f := range allFamilies(t) {
		e1, g1 := f.Evaluate(0, 1, 3.7, false)
		e2, _ := f.Evaluate(0, 1, 3.7, true)
		if g1 != 0 {
			t.Errorf("%s: energy-only call returned derivative %g", f.Name(), g1)
		}
		if e1 != e2 {
			t.Errorf("%s: energy differs between modes: %g vs %g", f.Name(), e1, e2)
		}
	}
}

func TestFamiliesFiniteDifference(t *testing.T) {
	const h = 1e-5
	distances := []float64{1.1, 2.3, 3.1, 4.2, 6.5}

	for _, f := range allFamilies(t) {
		for _, pair := range [][2]int{{0, 0}, {0, 1}, {1, 1}} {
			for _, d := range distances {
				_, g := f.Evaluate(pair[0], pair[1], d, true)
				ep, _ := f.Evaluate(pair[0], pair[1], d+h, false)
				em, _ := f.Evaluate(pair[0], pair[1], d-h, false)
				fd := (ep - em) / (2 * h)
				analytic := g * d

				tol := 1e-6 * math.Max(1, math.Abs(fd))
				if math.Abs(analytic-fd) > tol {
					t.Errorf("%s %v d=%g: analytic %g, finite difference %g", f.Name(), pair, d, analytic, fd)
				}
			}
		}
	}
}

func TestFamilyConstructors(t *testing.T) {
	if _, err := NewLennardJones([]float64{1}, []float64{1, 2}); err != ErrParameterMismatch {
		t.Errorf("expected ErrParameterMismatch, got %v", err)
	}
	if _, err := NewMM3Buckingham(nil, nil); err != ErrParameterMismatch {
		t.Errorf("expected ErrParameterMismatch, got %v", err)
	}
	if _, err := NewGrimmeDispersion([]float64{1, 2}, []float64{1}); err != ErrParameterMismatch {
		t.Errorf("expected ErrParameterMismatch, got %v", err)
	}
	if _, err := NewElectrostatic([]float64{1}, -0.1); err != ErrParameterBounds {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if _, err := NewElectrostatic(nil, 0); err != ErrParameterMismatch {
		t.Errorf("expected ErrParameterMismatch, got %v", err)
	}
}

func TestFamiliesShareCallerArrays(t *testing.T) {
	sigma := []float64{1.0, 1.0}
	epsilon := []float64{1.0, 1.0}
	lj := mustLJ(t, sigma, epsilon)

	epsilon[1] = 4.0
	e, _ := lj.Evaluate(0, 1, math.Pow(2, 1.0/6.0), false)
	if math.Abs(e+2.0) > 1e-12 {
		t.Errorf("expected family to see updated epsilon, got %g", e)
	}
}
