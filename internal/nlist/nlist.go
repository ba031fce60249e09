// Package nlist builds brute-force neighbor lists in the layout the pair
// kernel expects.
//
// Center i lists the primary image of every j < i and every non-primary
// image of every j, itself included. A periodic image pair therefore shows
// up once from each end, which the kernel's 0.5 image weight accounts for.
// Entries come out sorted by particle index.
package nlist

import (
	"errors"
	"math"

	"github.com/san-kum/pairpot/internal/pairpot"
)

var (
	ErrBadCutoff = errors.New("nlist: cutoff must be positive")
	ErrBadCell   = errors.New("nlist: cell lengths must be non-negative")
)

// Cell is an orthorhombic box. A zero length leaves that axis open.
type Cell [3]float64

func (c Cell) Periodic(axis int) bool { return c[axis] > 0 }

// Volume returns the box volume, or 0 unless all three axes are periodic.
func (c Cell) Volume() float64 {
	return c[0] * c[1] * c[2]
}

// Wrap applies the minimum-image convention to a displacement.
func (c Cell) Wrap(delta [3]float64) [3]float64 {
	for k := 0; k < 3; k++ {
		if c.Periodic(k) {
			delta[k] -= c[k] * math.Round(delta[k]/c[k])
		}
	}
	return delta
}

func (c Cell) imageRange(rcut float64) [3]int {
	var n [3]int
	for k := 0; k < 3; k++ {
		if c.Periodic(k) {
			n[k] = int(math.Ceil(rcut/c[k] + 0.5))
		}
	}
	return n
}

// Build returns one neighbor list per particle with every entry closer
// than rcut.
func Build(pos [][3]float64, cell Cell, rcut float64) ([][]pairpot.Neighbor, error) {
	if rcut <= 0 || math.IsNaN(rcut) {
		return nil, ErrBadCutoff
	}
	for k := 0; k < 3; k++ {
		if cell[k] < 0 {
			return nil, ErrBadCell
		}
	}

	nmax := cell.imageRange(rcut)
	out := make([][]pairpot.Neighbor, len(pos))
	for i := range pos {
		var row []pairpot.Neighbor
		for j := range pos {
			base := cell.Wrap([3]float64{
				pos[j][0] - pos[i][0],
				pos[j][1] - pos[i][1],
				pos[j][2] - pos[i][2],
			})
			for a := -nmax[0]; a <= nmax[0]; a++ {
				for b := -nmax[1]; b <= nmax[1]; b++ {
					for c := -nmax[2]; c <= nmax[2]; c++ {
						image := [3]int{a, b, c}
						primary := a == 0 && b == 0 && c == 0
						if primary && j >= i {
							continue
						}
						delta := [3]float64{
							base[0] + float64(a)*cell[0],
							base[1] + float64(b)*cell[1],
							base[2] + float64(c)*cell[2],
						}
						d := math.Sqrt(delta[0]*delta[0] + delta[1]*delta[1] + delta[2]*delta[2])
						if d >= rcut {
							continue
						}
						row = append(row, pairpot.Neighbor{Other: j, Delta: delta, D: d, Image: image})
					}
				}
			}
		}
		out[i] = row
	}
	return out, nil
}

// Pairs counts the entries over all lists.
func Pairs(nlists [][]pairpot.Neighbor) int {
	n := 0
	for _, row := range nlists {
		n += len(row)
	}
	return n
}
