package pairpot_test

import (
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pairpot/internal/pairpot"
)

// recorder wraps a family and remembers how it was called.
type recorder struct {
	inner pairpot.Family
	calls []bool
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Evaluate(center, other int, d float64, withDerivative bool) (float64, float64) {
	r.calls = append(r.calls, withDerivative)
	return r.inner.Evaluate(center, other, d, withDerivative)
}

func neighbor(other int, delta [3]float64) pairpot.Neighbor {
	return pairpot.Neighbor{
		Other: other,
		Delta: delta,
		D:     math.Sqrt(delta[0]*delta[0] + delta[1]*delta[1] + delta[2]*delta[2]),
	}
}

// halfLists builds open-boundary neighbor lists where center i sees j < i.
func halfLists(pos [][3]float64) [][]pairpot.Neighbor {
	out := make([][]pairpot.Neighbor, len(pos))
	for i := range pos {
		for j := 0; j < i; j++ {
			out[i] = append(out[i], neighbor(j, [3]float64{
				pos[j][0] - pos[i][0],
				pos[j][1] - pos[i][1],
				pos[j][2] - pos[i][2],
			}))
		}
	}
	return out
}

func total(pot *pairpot.PairPotential, pos [][3]float64, scalings [][]pairpot.Scaling, gpos []float64, vtens *pairpot.Virial) float64 {
	nlists := halfLists(pos)
	e := 0.0
	for i := range nlists {
		var table []pairpot.Scaling
		if scalings != nil {
			table = scalings[i]
		}
		v, err := pot.Compute(i, nlists[i], table, gpos, vtens)
		Expect(err).NotTo(HaveOccurred())
		e += v
	}
	return e
}

var _ = Describe("Compute", func() {
	var lj *pairpot.LennardJones

	BeforeEach(func() {
		var err error
		lj, err = pairpot.NewLennardJones([]float64{1.0, 1.0, 1.2}, []float64{1.0, 1.0, 0.7})
		Expect(err).NotTo(HaveOccurred())
	})

	Context("two Lennard-Jones particles at unit distance", func() {
		It("matches the closed-form energy and gradient", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(10))
			delta := [3]float64{0.6, 0.0, 0.8}
			gpos := make([]float64, 6)

			e, err := pot.Compute(1, []pairpot.Neighbor{neighbor(0, delta)}, nil, gpos, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(BeNumerically("~", 0.0, 1e-12))

			for k := 0; k < 3; k++ {
				Expect(gpos[k]).To(BeNumerically("~", -24*delta[k], 1e-12))
				Expect(gpos[3+k]).To(BeNumerically("~", 24*delta[k], 1e-12))
			}
		})

		It("pushes the particles apart", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(10))
			gpos := make([]float64, 6)
			total(pot, [][3]float64{{0, 0, 0}, {1, 0, 0}}, nil, gpos, nil)

			// force is minus the gradient
			Expect(-gpos[0]).To(BeNumerically("<", 0))
			Expect(-gpos[3]).To(BeNumerically(">", 0))
		})
	})

	Context("derivative requests", func() {
		It("evaluates energy only when no buffer is given", func() {
			rec := &recorder{inner: lj}
			pot := pairpot.New(pairpot.WithFamily(rec), pairpot.WithCutoff(10))
			_, err := pot.Compute(1, []pairpot.Neighbor{neighbor(0, [3]float64{1.1, 0, 0})}, nil, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(Equal([]bool{false}))
		})

		It("asks for the derivative when only the virial is wanted", func() {
			rec := &recorder{inner: lj}
			pot := pairpot.New(pairpot.WithFamily(rec), pairpot.WithCutoff(10))
			var vtens pairpot.Virial
			_, err := pot.Compute(1, []pairpot.Neighbor{neighbor(0, [3]float64{1.1, 0, 0})}, nil, nil, &vtens)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(Equal([]bool{true}))
			Expect(vtens[0]).NotTo(BeZero())
		})

		It("gives the same energy in both modes", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(3), pairpot.WithSmoothing(true))
			pos := [][3]float64{{0, 0, 0}, {1.1, 0.2, 0}, {0.3, 1.2, 0.4}}
			gpos := make([]float64, 9)
			Expect(total(pot, pos, nil, nil, nil)).To(Equal(total(pot, pos, nil, gpos, nil)))
		})
	})

	Context("cutoff", func() {
		It("ignores neighbors at or beyond the cutoff", func() {
			rec := &recorder{inner: lj}
			pot := pairpot.New(pairpot.WithFamily(rec), pairpot.WithCutoff(2.0))
			nlist := []pairpot.Neighbor{
				neighbor(0, [3]float64{2.0, 0, 0}),
				neighbor(1, [3]float64{0, 2.5, 0}),
			}
			e, err := pot.Compute(2, nlist, nil, make([]float64, 9), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(BeZero())
			Expect(rec.calls).To(BeEmpty())
		})
	})

	Context("exclusion scaling", func() {
		It("skips fully excluded pairs and scales partial ones", func() {
			rec := &recorder{inner: lj}
			pot := pairpot.New(pairpot.WithFamily(rec), pairpot.WithCutoff(10))
			nlist := []pairpot.Neighbor{
				neighbor(0, [3]float64{1.2, 0, 0}),
				neighbor(1, [3]float64{0, 1.3, 0}),
			}
			scaling := []pairpot.Scaling{{Other: 0, Scale: 0.0}, {Other: 1, Scale: 0.5}}

			e, err := pot.Compute(2, nlist, scaling, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(HaveLen(1))

			raw, _ := lj.Evaluate(2, 1, 1.3, false)
			Expect(e).To(BeNumerically("~", 0.5*raw, 1e-14))
		})

		It("weighs periodic images by one half regardless of the table", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(10))
			img := neighbor(0, [3]float64{1.3, 0, 0})
			img.Image = [3]int{1, 0, 0}
			self := neighbor(1, [3]float64{0, 0, 1.4})
			self.Image = [3]int{0, 0, -1}

			for _, table := range [][]pairpot.Scaling{
				nil,
				{{Other: 0, Scale: 0.0}, {Other: 1, Scale: 0.0}},
				{{Other: 0, Scale: 1.0}},
			} {
				e, err := pot.Compute(1, []pairpot.Neighbor{img, self}, table, nil, nil)
				Expect(err).NotTo(HaveOccurred())
				e0, _ := lj.Evaluate(1, 0, 1.3, false)
				e1, _ := lj.Evaluate(1, 1, 1.4, false)
				Expect(e).To(BeNumerically("~", 0.5*(e0+e1), 1e-14))
			}
		})

		It("rejects out-of-order primary neighbors without touching the buffers", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(10))
			nlist := []pairpot.Neighbor{
				neighbor(1, [3]float64{1.2, 0, 0}),
				neighbor(0, [3]float64{0, 1.2, 0}),
			}
			gpos := make([]float64, 9)
			var vtens pairpot.Virial

			_, err := pot.Compute(2, nlist, []pairpot.Scaling{{Other: 0, Scale: 0}}, gpos, &vtens)
			Expect(err).To(MatchError(pairpot.ErrScalingOrder))

			var orderErr *pairpot.OrderError
			Expect(err).To(BeAssignableToTypeOf(orderErr))
			orderErr = err.(*pairpot.OrderError)
			Expect(orderErr.Center).To(Equal(2))
			Expect(orderErr.Position).To(Equal(1))
			Expect(orderErr.Previous).To(Equal(1))
			Expect(orderErr.Other).To(Equal(0))

			Expect(gpos).To(Equal(make([]float64, 9)))
			Expect(vtens).To(Equal(pairpot.Virial{}))
		})

		It("does not check order of images or entries beyond the cutoff", func() {
			pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(5))
			far := neighbor(1, [3]float64{6, 0, 0})
			img := neighbor(1, [3]float64{0, 2, 0})
			img.Image = [3]int{0, 1, 0}
			nlist := []pairpot.Neighbor{far, img, neighbor(0, [3]float64{1.2, 0, 0})}

			_, err := pot.Compute(2, nlist, nil, nil, nil)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("gradient and virial", func() {
		pos := [][3]float64{{0, 0, 0}, {1.15, 0.1, -0.2}, {0.4, 1.05, 0.35}}
		scalings := [][]pairpot.Scaling{nil, nil, {{Other: 1, Scale: 0.5}}}

		for _, smooth := range []bool{false, true} {
			smooth := smooth

			Context(fmt.Sprintf("with smoothing %v", smooth), func() {
				It("satisfies action-reaction for a pair", func() {
					pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(3), pairpot.WithSmoothing(smooth))
					gpos := make([]float64, 6)
					total(pot, pos[:2], nil, gpos, nil)
					for k := 0; k < 3; k++ {
						Expect(gpos[k]).To(Equal(-gpos[3+k]))
					}
				})

				It("matches finite differences of the total energy", func() {
					pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(3), pairpot.WithSmoothing(smooth))
					gpos := make([]float64, 9)
					total(pot, pos, scalings, gpos, nil)

					const h = 1e-6
					for i := range pos {
						for k := 0; k < 3; k++ {
							shifted := make([][3]float64, len(pos))
							copy(shifted, pos)
							shifted[i][k] += h
							ep := total(pot, shifted, scalings, nil, nil)
							shifted[i][k] -= 2 * h
							em := total(pot, shifted, scalings, nil, nil)
							Expect(gpos[3*i+k]).To(BeNumerically("~", (ep-em)/(2*h), 1e-5))
						}
					}
				})

				It("accumulates a symmetric virial whose trace is the strain derivative", func() {
					pot := pairpot.New(pairpot.WithFamily(lj), pairpot.WithCutoff(3), pairpot.WithSmoothing(smooth))
					var vtens pairpot.Virial
					total(pot, pos, scalings, nil, &vtens)
					total(pot, pos[:2], nil, nil, &vtens)

					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							Expect(vtens.At(i, j)).To(Equal(vtens.At(j, i)))
						}
					}

					strained := func(eps float64) float64 {
						scaled := make([][3]float64, len(pos))
						for i := range pos {
							for k := 0; k < 3; k++ {
								scaled[i][k] = pos[i][k] * (1 + eps)
							}
						}
						return total(pot, scaled, scalings, nil, nil)
					}
					var single pairpot.Virial
					total(pot, pos, scalings, nil, &single)
					fd := (strained(1e-6) - strained(-1e-6)) / 2e-6
					Expect(single.Trace()).To(BeNumerically("~", fd, 1e-5))
				})
			})
		}
	})
})
