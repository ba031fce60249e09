// Package topology derives non-bonded exclusion tables from a bond graph.
package topology

import (
	"errors"
	"fmt"

	"github.com/san-kum/pairpot/internal/pairpot"
)

var (
	ErrInvalidBond   = errors.New("topology: invalid bond")
	ErrInvalidFactor = errors.New("topology: scaling factor outside [0, 1]")
)

// Factors scale interactions between particles separated by one, two,
// three or four bonds.
type Factors struct {
	Scale1 float64 `yaml:"scale1" json:"scale1"`
	Scale2 float64 `yaml:"scale2" json:"scale2"`
	Scale3 float64 `yaml:"scale3" json:"scale3"`
	Scale4 float64 `yaml:"scale4" json:"scale4"`
}

// DefaultFactors excludes 1-2 and 1-3 pairs and keeps everything else.
func DefaultFactors() Factors {
	return Factors{Scale1: 0, Scale2: 0, Scale3: 1, Scale4: 1}
}

func (f Factors) Validate() error {
	for _, s := range f.slice() {
		if s < 0 || s > 1 {
			return fmt.Errorf("%w: %g", ErrInvalidFactor, s)
		}
	}
	return nil
}

func (f Factors) slice() []float64 {
	return []float64{f.Scale1, f.Scale2, f.Scale3, f.Scale4}
}

// Scalings returns, for every particle i, the sorted scaling table over
// j < i. Only pairs with a scale below one get an entry.
func Scalings(n int, bonds [][2]int, f Factors) ([][]pairpot.Scaling, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	adj, err := adjacency(n, bonds)
	if err != nil {
		return nil, err
	}

	factors := f.slice()
	depth := 0
	for k, s := range factors {
		if s < 1 {
			depth = k + 1
		}
	}

	out := make([][]pairpot.Scaling, n)
	dist := make([]int, n)
	for i := 0; i < n; i++ {
		for j := range dist {
			dist[j] = -1
		}
		distances(adj, i, depth, dist)

		var row []pairpot.Scaling
		for j := 0; j < i; j++ {
			d := dist[j]
			if d < 1 || d > len(factors) {
				continue
			}
			if s := factors[d-1]; s < 1 {
				row = append(row, pairpot.Scaling{Other: j, Scale: s})
			}
		}
		out[i] = row
	}
	return out, nil
}

func adjacency(n int, bonds [][2]int) ([][]int, error) {
	adj := make([][]int, n)
	for _, b := range bonds {
		i, j := b[0], b[1]
		if i < 0 || j < 0 || i >= n || j >= n || i == j {
			return nil, fmt.Errorf("%w: %d-%d", ErrInvalidBond, i, j)
		}
		adj[i] = append(adj[i], j)
		adj[j] = append(adj[j], i)
	}
	return adj, nil
}

// distances fills dist with bond counts from start, up to maxDepth.
func distances(adj [][]int, start, maxDepth int, dist []int) {
	dist[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if dist[cur] >= maxDepth {
			continue
		}
		for _, next := range adj[cur] {
			if dist[next] < 0 {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
}
