package pairpot

// PairPotential couples one [Family] with a cutoff radius and an optional
// smoothing envelope. The zero value is an empty, unbound potential.
type PairPotential struct {
	family Family
	cutoff float64
	smooth bool
}

// Option configures a PairPotential at construction.
type Option func(*PairPotential)

func WithCutoff(rcut float64) Option {
	return func(p *PairPotential) { p.cutoff = rcut }
}

func WithSmoothing(on bool) Option {
	return func(p *PairPotential) { p.smooth = on }
}

// WithFamily binds f at construction. A nil family leaves the potential
// unbound.
func WithFamily(f Family) Option {
	return func(p *PairPotential) { p.family = f }
}

// New returns a potential with cutoff 0, smoothing off and no family,
// unless options say otherwise.
func New(opts ...Option) *PairPotential {
	p := &PairPotential{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Bind attaches f. The potential keeps f, and through it the caller's
// parameter slices, until Release.
func (p *PairPotential) Bind(f Family) error {
	if f == nil {
		return ErrNilFamily
	}
	if p.family != nil {
		return ErrAlreadyBound
	}
	p.family = f
	return nil
}

// Release drops the bound family. It is a no-op on an unbound potential.
func (p *PairPotential) Release() {
	p.family = nil
}

func (p *PairPotential) Ready() bool { return p.family != nil }

func (p *PairPotential) Family() Family { return p.family }

func (p *PairPotential) Cutoff() float64 { return p.cutoff }

func (p *PairPotential) SetCutoff(rcut float64) { p.cutoff = rcut }

func (p *PairPotential) Smoothing() bool { return p.smooth }

func (p *PairPotential) SetSmoothing(on bool) { p.smooth = on }
