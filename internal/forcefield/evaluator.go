package forcefield

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pairpot/internal/config"
	"github.com/san-kum/pairpot/internal/nlist"
	"github.com/san-kum/pairpot/internal/pairpot"
	"github.com/san-kum/pairpot/internal/topology"
)

var ErrSizeMismatch = errors.New("forcefield: neighbor lists and scaling tables differ in length")

// Evaluator computes the non-bonded energy of a fixed configuration.
type Evaluator struct {
	pot      *pairpot.PairPotential
	nlists   [][]pairpot.Neighbor
	scalings [][]pairpot.Scaling
	cell     nlist.Cell
	logger   *slog.Logger
}

type Option func(*Evaluator)

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

func WithCell(c nlist.Cell) Option {
	return func(e *Evaluator) { e.cell = c }
}

// New wraps precomputed neighbor lists and scaling tables. scalings may be
// nil when nothing is excluded.
func New(pot *pairpot.PairPotential, nlists [][]pairpot.Neighbor, scalings [][]pairpot.Scaling, opts ...Option) (*Evaluator, error) {
	if pot == nil || !pot.Ready() {
		return nil, pairpot.ErrNotReady
	}
	if scalings != nil && len(scalings) != len(nlists) {
		return nil, ErrSizeMismatch
	}
	e := &Evaluator{
		pot:      pot,
		nlists:   nlists,
		scalings: scalings,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FromConfig builds the potential, neighbor lists and scaling tables
// described by cfg.
func FromConfig(cfg *config.Config, opts ...Option) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pot, err := cfg.Potential()
	if err != nil {
		return nil, fmt.Errorf("potential: %w", err)
	}
	cell := nlist.Cell(cfg.Cell)
	nl, err := nlist.Build(cfg.Positions(), cell, cfg.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("neighbor lists: %w", err)
	}
	sc, err := topology.Scalings(len(cfg.Particles), cfg.Bonds, cfg.Scalings)
	if err != nil {
		return nil, fmt.Errorf("scalings: %w", err)
	}
	return New(pot, nl, sc, append([]Option{WithCell(cell)}, opts...)...)
}

func (e *Evaluator) Potential() *pairpot.PairPotential { return e.pot }

func (e *Evaluator) Size() int { return len(e.nlists) }

func (e *Evaluator) Cell() nlist.Cell { return e.cell }

// Pairs counts the neighbor-list entries across all centers.
func (e *Evaluator) Pairs() int { return nlist.Pairs(e.nlists) }

func (e *Evaluator) scaling(i int) []pairpot.Scaling {
	if e.scalings == nil {
		return nil
	}
	return e.scalings[i]
}

// Energy sums the energy over all centers without derivatives.
func (e *Evaluator) Energy(ctx context.Context) (float64, error) {
	total := 0.0
	for i := range e.nlists {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		v, err := e.pot.Compute(i, e.nlists[i], e.scaling(i), nil, nil)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// Compute evaluates energy, gradient and virial on one goroutine.
func (e *Evaluator) Compute(ctx context.Context) (*Result, error) {
	res := newResult(len(e.nlists))
	if err := e.computeRange(ctx, 0, len(e.nlists), res); err != nil {
		return nil, err
	}
	e.logger.Debug("evaluated", "particles", len(e.nlists), "pairs", e.Pairs(), "energy", res.Energy)
	return res, nil
}

// ComputeParallel splits the centers over workers goroutines, each with
// private buffers, and reduces their results. workers <= 0 uses GOMAXPROCS.
func (e *Evaluator) ComputeParallel(ctx context.Context, workers int) (*Result, error) {
	n := len(e.nlists)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return e.Compute(ctx)
	}

	chunk := (n + workers - 1) / workers
	partial := make([]*Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		res := newResult(n)
		partial[w] = res
		g.Go(func() error {
			return e.computeRange(ctx, start, end, res)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newResult(n)
	for _, p := range partial {
		total.add(p)
	}
	e.logger.Debug("evaluated in parallel", "particles", n, "workers", workers, "energy", total.Energy)
	return total, nil
}

func (e *Evaluator) computeRange(ctx context.Context, start, end int, res *Result) error {
	for i := start; i < end; i++ {
		if (i-start)%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v, err := e.pot.Compute(i, e.nlists[i], e.scaling(i), res.Gradient, &res.Virial)
		if err != nil {
			return err
		}
		res.Energy += v
	}
	return nil
}
