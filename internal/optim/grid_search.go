package optim

import (
	"context"
	"errors"
	"maps"
	"math"
)

var ErrEmptyGrid = errors.New("optim: grid has no points")

// Objective scores one parameter assignment. Lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type Trial struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates an objective on the Cartesian product of per-parameter
// value lists.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best trial and every trial in evaluation order. The
// first objective error stops the search.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Trial, []Trial, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, ErrEmptyGrid
	}
	for _, r := range g.ranges {
		if len(r) == 0 {
			return Trial{}, nil, ErrEmptyGrid
		}
	}

	best := Trial{Value: math.Inf(1)}
	var trials []Trial
	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &trials)
	return best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *Trial,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		val, err := objective(ctx, current)
		if err != nil {
			return err
		}
		t := Trial{Params: maps.Clone(current), Value: val}
		*trials = append(*trials, t)
		if val < best.Value {
			*best = t
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, objective, best, trials); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*(hi-lo)/float64(n-1)
	}
	return out
}
