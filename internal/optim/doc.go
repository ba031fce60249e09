// Package optim searches parameter grids for the lowest objective value.
//
// The pairpot CLI uses it for equation-of-state scans, where a single
// "scale" parameter stretches a configuration and the objective is the
// energy per particle:
//
//	g := optim.NewGridSearch([]string{"scale"}, [][]float64{optim.Linspace(0.9, 1.1, 21)})
//	best, trials, err := g.Search(ctx, objective)
package optim
