// Package forcefield drives the pair kernel over a whole system.
//
// It is the caller the kernel expects: it owns the neighbor lists, the
// scaling tables and the gradient and virial buffers, sums energies over
// all center particles, and chooses how to parallelize.
//
// # Parallel Evaluation
//
// [Evaluator.ComputeParallel] splits the centers into contiguous chunks.
// Every worker accumulates into its own gradient and virial buffers, and
// the buffers are reduced once all workers finish, so the kernel never sees
// a shared accumulator.
package forcefield
