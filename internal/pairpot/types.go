package pairpot

// Neighbor is one entry of a center particle's neighbor list.
type Neighbor struct {
	Other int
	// Delta is the position of Other minus the center, image shift included.
	Delta [3]float64
	D     float64
	Image [3]int
}

// Primary reports whether the entry refers to the unshifted periodic image.
func (n Neighbor) Primary() bool {
	return n.Image[0] == 0 && n.Image[1] == 0 && n.Image[2] == 0
}

// Scaling down-weights the interaction between a center and Other.
type Scaling struct {
	Other int
	Scale float64
}

// Virial is a row-major 3x3 symmetric tensor accumulator.
type Virial [9]float64

// At returns the (i, j) component.
func (v *Virial) At(i, j int) float64 { return v[3*i+j] }

// Trace returns the sum of the diagonal.
func (v *Virial) Trace() float64 { return v[0] + v[4] + v[8] }

// Add accumulates other into v.
func (v *Virial) Add(other *Virial) {
	for i := range v {
		v[i] += other[i]
	}
}

// Reset zeroes every component.
func (v *Virial) Reset() {
	*v = Virial{}
}
