package integrators

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/rounding"
)

func harmonic() *autodiff.Graph {
	g, err := autodiff.FromFunc(2, 2, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Neg()
	})
	Expect(err).NotTo(HaveOccurred())
	return g
}

func lorenz() *autodiff.Graph {
	g, err := autodiff.FromFunc(3, 3, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		x, y, z := in[0], in[1], in[2]
		out[0] = y.Sub(x).MulConst(10)
		out[1] = x.Mul(z.Neg().AddConst(28)).Sub(y)
		out[2] = x.Mul(y).Sub(z.MulConst(8.0 / 3.0))
	})
	Expect(err).NotTo(HaveOccurred())
	return g
}

func adaptive(order int, tol float64) dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Order = order
	cfg.AbsTol = tol
	cfg.RelTol = 0
	return cfg
}

// integrate moves set until its time reaches tEnd.
func integrate(s *Taylor, set *dynset.Doubleton, tEnd float64) (*dynset.Doubleton, []dynamo.StepInfo, error) {
	var infos []dynamo.StepInfo
	for set.Time.Hi() < tEnd {
		next, info, err := s.Move(set, rounding.Up.Sub(tEnd, set.Time.Hi()))
		if err != nil {
			return set, infos, err
		}
		infos = append(infos, info)
		set = next
	}
	return set, infos, nil
}

func pointSet(xs ...float64) *dynset.Doubleton {
	return dynset.New(interval.Point(0), interval.PointVector(xs))
}

var _ = Describe("Taylor", func() {
	Describe("construction", func() {
		It("rejects an invalid configuration", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Order = 0
			_, err := NewTaylor(harmonic(), cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("rejects a field that is not square", func() {
			g, err := autodiff.FromFunc(2, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
				out[0] = in[0].Add(in[1])
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = NewTaylor(g, dynamo.DefaultConfig())
			Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
		})

		It("rejects a set of the wrong dimension", func() {
			s, err := NewTaylor(harmonic(), adaptive(10, 1e-10))
			Expect(err).NotTo(HaveOccurred())
			_, _, err = s.Move(pointSet(1, 0, 0), 0)
			Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
			Expect(s.Phase()).To(Equal(dynamo.Failed))
		})
	})

	Describe("harmonic oscillator", func() {
		It("encloses (-1, 0) at time pi", func() {
			s, err := NewTaylor(harmonic(), adaptive(12, 1e-12))
			Expect(err).NotTo(HaveOccurred())

			final, infos, err := integrate(s, pointSet(1, 0), math.Pi)
			Expect(err).NotTo(HaveOccurred())
			Expect(infos).NotTo(BeEmpty())
			Expect(final.Time.Contains(math.Pi)).To(BeTrue())

			box := final.Hull()
			Expect(box[0].Inflate(1e-15).Contains(-1)).To(BeTrue(), "x = %v", box[0])
			Expect(box[1].Inflate(1e-15).Contains(0)).To(BeTrue(), "v = %v", box[1])
			Expect(final.Width()).To(BeNumerically("<", 1e-8))
			Expect(s.Phase()).To(Equal(dynamo.Stepped))
		})

		It("tightens the enclosure as the tolerance shrinks", func() {
			var widths []float64
			for _, tol := range []float64{1e-6, 1e-8, 1e-10} {
				s, err := NewTaylor(harmonic(), adaptive(10, tol))
				Expect(err).NotTo(HaveOccurred())
				final, _, err := integrate(s, pointSet(1, 0), math.Pi)
				Expect(err).NotTo(HaveOccurred())
				widths = append(widths, final.Width())
			}
			Expect(widths[1]).To(BeNumerically("<", widths[0]))
			Expect(widths[2]).To(BeNumerically("<", widths[1]))
		})

		It("takes exactly the requested fixed steps", func() {
			cfg := adaptive(8, 1e-10)
			cfg.Adaptive = false
			cfg.Step = 0.125
			s, err := NewTaylor(harmonic(), cfg)
			Expect(err).NotTo(HaveOccurred())

			final, infos, err := integrate(s, pointSet(1, 0), 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(infos).To(HaveLen(8))
			for _, info := range infos {
				Expect(info.Step).To(Equal(0.125))
				Expect(info.Rejections).To(BeZero())
			}
			Expect(final.Time).To(Equal(interval.Point(1)))
			Expect(final.Contains([]float64{math.Cos(1), -math.Sin(1)})).To(BeTrue())
		})

		It("grows the step at most by MaxGrowth", func() {
			s, err := NewTaylor(harmonic(), adaptive(10, 1e-10))
			Expect(err).NotTo(HaveOccurred())
			_, infos, err := integrate(s, pointSet(1, 0), 4)
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(infos); i++ {
				Expect(infos[i].Step).To(BeNumerically("<=", 2*infos[i-1].Step))
			}
		})

		It("fails in bounded time with an absurd tolerance", func() {
			s, err := NewTaylor(harmonic(), adaptive(10, 1e-300))
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			_, _, err = integrate(s, pointSet(1, 0), math.Pi)
			Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))
			Expect(err).To(Or(MatchError(dynamo.ErrStepTooSmall), MatchError(dynamo.ErrTooManyRejections)))

			var serr *dynamo.SolverError
			Expect(err).To(BeAssignableToTypeOf(serr))
			Expect(s.Phase()).To(Equal(dynamo.Failed))
		})
	})

	Describe("Lorenz system", func() {
		It("contains point solutions started in the box", func() {
			center := []float64{1, 1, 1}
			box := interval.BoxAround(center, 1e-3)
			s, err := NewTaylor(lorenz(), adaptive(15, 1e-12))
			Expect(err).NotTo(HaveOccurred())

			final, _, err := integrate(s, dynset.New(interval.Point(0), box), 0.5)
			Expect(err).NotTo(HaveOccurred())
			hull := final.Hull()

			sys := NewPointSystem(lorenz())
			for _, d := range [][]float64{{0, 0, 0}, {5e-4, -5e-4, 5e-4}, {-9e-4, 9e-4, 0}} {
				x0 := dynamo.State{center[0] + d[0], center[1] + d[1], center[2] + d[2]}
				x := NewRK4().Integrate(sys, x0, 0, 0.5, 1e-4)
				for i := range x {
					Expect(hull[i].Inflate(1e-8).Contains(x[i])).To(BeTrue(), "coordinate %d: %v not in %v", i, x[i], hull[i])
				}
			}
		})
	})

	Describe("failure", func() {
		It("reports a missing enclosure near a blow-up and stays failed", func() {
			g, err := autodiff.FromFunc(1, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
				out[0] = in[0].Sqr()
			})
			Expect(err).NotTo(HaveOccurred())
			cfg := adaptive(6, 1e-10)
			cfg.Adaptive = false
			cfg.Step = 2
			s, err := NewTaylor(g, cfg)
			Expect(err).NotTo(HaveOccurred())

			_, info, err := s.Move(pointSet(1), 0)
			Expect(err).To(MatchError(dynamo.ErrEnclosureNotFound))
			Expect(info.Phase).To(Equal(dynamo.Failed))

			_, _, again := s.Move(pointSet(1), 0)
			Expect(again).To(Equal(err))

			s.Reset()
			s.SetStep(0.125)
			_, _, err = s.Move(pointSet(1), 0)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

var _ = Describe("FirstOrderEnclosure", func() {
	It("contains the decaying solutions over the step", func() {
		g, err := autodiff.FromFunc(1, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
			out[0] = in[0].Neg()
		})
		Expect(err).NotTo(HaveOccurred())
		box := interval.Vector{interval.Must(1, 2)}
		enc, err := FirstOrderEnclosure(g, interval.Point(0), box, 0.1, discard)
		Expect(err).NotTo(HaveOccurred())
		Expect(enc[0].Contains(math.Exp(-0.1))).To(BeTrue())
		Expect(enc[0].Contains(2)).To(BeTrue())
	})

	It("bounds the Lagrange remainder by the next coefficient", func() {
		box := interval.Vector{interval.Must(-1.1, 1.1), interval.Must(-1.1, 1.1)}
		rem, err := Remainder(harmonic(), interval.Point(0), box, 0.5, 9)
		Expect(err).NotTo(HaveOccurred())
		bound := 1.1 * math.Pow(0.5, 10) / 3628800
		for _, r := range rem {
			Expect(r.Mag()).To(BeNumerically("<=", bound*(1+1e-12)))
			Expect(r.ContainsZero()).To(BeTrue())
		}
	})
})
