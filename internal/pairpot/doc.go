// Package pairpot evaluates non-bonded pair interactions for one center
// particle at a time.
//
// The package is built from a handful of pieces:
//
//   - [Family]: a stateless pair formula (energy and derivative over distance)
//   - [LennardJones], [MM3Buckingham], [GrimmeDispersion], [Electrostatic]
//   - [ScalingCursor]: monotonic lookup into a sorted exclusion table
//   - [Smooth]: cutoff tapering envelope
//   - [PairPotential]: cutoff, smoothing flag and one bound family
//
// # Example
//
//	lj, _ := pairpot.NewLennardJones(sigma, epsilon)
//	pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(10))
//	for i := range nlists {
//	    e, err := pot.Compute(i, nlists[i], scalings[i], gpos, &vtens)
//	    ...
//	}
//
// # Parameter Ownership
//
// Families keep views into the per-particle slices handed to their
// constructors. Releasing a [PairPotential] drops the family; the caller
// still owns the slices and must keep them at full length while bound.
//
// # Thread Safety
//
// Compute does not allocate and holds no shared state, but the gradient and
// virial buffers are plain additive accumulators. Calls that share buffers
// must be serialized by the caller, or each goroutine must own its buffers
// and reduce afterwards.
package pairpot
