package pairpot

// imageWeight applies to every non-primary periodic image. The neighbor
// list holds each image pair from both ends, so each end counts half.
const imageWeight = 0.5

// Compute sums the interactions of center with its neighbor list and
// returns the energy. gpos (3 entries per particle) and vtens are additive
// accumulators and may be nil; with both nil no derivatives are computed.
//
// Primary-image entries inside the cutoff must be sorted by Other so the
// scaling table can be walked once. The order is checked before anything is
// accumulated; a violation returns an [*OrderError] and leaves the buffers
// untouched.
func (p *PairPotential) Compute(center int, nlist []Neighbor, scaling []Scaling, gpos []float64, vtens *Virial) (float64, error) {
	if p.family == nil {
		return 0, ErrNotReady
	}
	if err := p.checkOrder(center, nlist); err != nil {
		return 0, err
	}

	withDerivative := gpos != nil || vtens != nil
	cursor := NewScalingCursor(scaling)
	energy := 0.0

	for i := range nlist {
		n := &nlist[i]
		if n.D >= p.cutoff {
			continue
		}

		s := imageWeight
		if n.Primary() {
			s = cursor.Lookup(n.Other)
		}
		if s <= 0 {
			continue
		}

		v, vg := p.pair(center, n.Other, n.D, withDerivative)
		energy += s * v
		if !withDerivative {
			continue
		}
		vg *= s

		if gpos != nil {
			for k := 0; k < 3; k++ {
				h := n.Delta[k] * vg
				gpos[3*n.Other+k] += h
				gpos[3*center+k] -= h
			}
		}
		if vtens != nil {
			dx, dy, dz := n.Delta[0], n.Delta[1], n.Delta[2]
			vtens[0] += dx * dx * vg
			vtens[4] += dy * dy * vg
			vtens[8] += dz * dz * vg
			h := dx * dy * vg
			vtens[1] += h
			vtens[3] += h
			h = dx * dz * vg
			vtens[2] += h
			vtens[6] += h
			h = dy * dz * vg
			vtens[5] += h
			vtens[7] += h
		}
	}
	return energy, nil
}

// Pair evaluates the bound family for a single pair, with the smoothing
// envelope applied when enabled. Distances at or beyond the cutoff give
// zero. No scaling weight is applied.
func (p *PairPotential) Pair(center, other int, d float64, withDerivative bool) (float64, float64) {
	if p.family == nil || d >= p.cutoff {
		return 0, 0
	}
	return p.pair(center, other, d, withDerivative)
}

func (p *PairPotential) pair(center, other int, d float64, withDerivative bool) (float64, float64) {
	v, vg := p.family.Evaluate(center, other, d, withDerivative)
	if !p.smooth {
		return v, vg
	}
	if !withDerivative {
		return v * Smooth(d, p.cutoff), 0
	}
	h, hg := SmoothDerivative(d, p.cutoff)
	// product rule, kept in derivative-over-distance units
	return v * h, vg*h + v*hg/d
}

func (p *PairPotential) checkOrder(center int, nlist []Neighbor) error {
	prev, pos := -1, -1
	for i := range nlist {
		n := &nlist[i]
		if n.D >= p.cutoff || !n.Primary() {
			continue
		}
		if pos >= 0 && n.Other < prev {
			return &OrderError{Center: center, Position: i, Previous: prev, Other: n.Other}
		}
		prev, pos = n.Other, i
	}
	return nil
}
