package taylor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/interval"
)

func fact(k int) float64 {
	f := 1.0
	for i := 2; i <= k; i++ {
		f *= float64(i)
	}
	return f
}

func encloses(t *testing.T, got interval.Interval, want float64, msgAndArgs ...interface{}) {
	t.Helper()
	tol := 1e-12 * math.Max(1, math.Abs(want))
	assert.True(t, got.Lo()-tol <= want && want <= got.Hi()+tol, "%v misses %v %v", got, want, msgAndArgs)
}

func field(t *testing.T, n int, fn func(tm autodiff.Node, in, out []autodiff.Node)) *autodiff.Graph {
	t.Helper()
	g, err := autodiff.FromFunc(n, n, 0, func(tm autodiff.Node, in, out, _ []autodiff.Node) {
		fn(tm, in, out)
	})
	require.NoError(t, err)
	return g
}

func TestExponentialGrowth(t *testing.T) {
	g := field(t, 1, func(_ autodiff.Node, in, out []autodiff.Node) { out[0] = in[0] })
	s, err := LinearCoefficients(g, interval.Point(0), interval.PointVector([]float64{2}), 12)
	require.NoError(t, err)
	require.Equal(t, 12, s.Order())
	for k := 0; k <= 12; k++ {
		encloses(t, s.Values(k)[0], 2/fact(k), "order", k)
		encloses(t, s.Matrix(k).At(0, 0), 1/fact(k), "order", k)
	}
	sum := s.SumValues(interval.Point(0.1))
	encloses(t, sum[0], 2*math.Exp(0.1))
	encloses(t, s.SumMatrix(interval.Point(0.1)).At(0, 0), math.Exp(0.1))
}

func TestQuadraticBlowUp(t *testing.T) {
	// x' = x², x(0) = c has x(t) = c/(1-ct) with coefficients c^{k+1}.
	g := field(t, 1, func(_ autodiff.Node, in, out []autodiff.Node) { out[0] = in[0].Sqr() })
	const c = 0.5
	s, err := PointCoefficients(g, interval.Point(0), interval.PointVector([]float64{c}), 10)
	require.NoError(t, err)
	for k := 0; k <= 10; k++ {
		encloses(t, s.Values(k)[0], math.Pow(c, float64(k+1)), "order", k)
	}
	assert.InDelta(t, math.Pow(c, 11), s.Norm(10), 1e-15)
}

func TestTimeDependentField(t *testing.T) {
	// x' = cos(t), x(t0) = 0 has coefficients of sin(t0 + h) - sin(t0).
	const t0 = 0.4
	g := field(t, 1, func(tm autodiff.Node, _, out []autodiff.Node) { out[0] = tm.Cos() })
	s, err := PointCoefficients(g, interval.Point(t0), interval.PointVector([]float64{0}), 6)
	require.NoError(t, err)
	derivs := []float64{math.Sin(t0), math.Cos(t0), -math.Sin(t0), -math.Cos(t0)}
	for k := 1; k <= 6; k++ {
		encloses(t, s.Values(k)[0], derivs[k%4]/fact(k), "order", k)
	}
}

func TestThreeDimensionalField(t *testing.T) {
	// Rotation in (x, y) and growth in z: x' = y, y' = -x, z' = z.
	g := field(t, 3, func(_ autodiff.Node, in, out []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Neg()
		out[2] = in[2]
	})
	s, err := LinearCoefficients(g, interval.Point(0), interval.PointVector([]float64{1, 0, 1}), 8)
	require.NoError(t, err)
	for k := 0; k <= 8; k++ {
		var x, y float64
		switch k % 4 {
		case 0:
			x = 1
		case 1:
			y = -1
		case 2:
			x = -1
		case 3:
			y = 1
		}
		v := s.Values(k)
		encloses(t, v[0], x/fact(k), "x order", k)
		encloses(t, v[1], y/fact(k), "y order", k)
		encloses(t, v[2], 1/fact(k), "z order", k)
	}
	h := 0.25
	phi := s.SumMatrix(interval.Point(h))
	encloses(t, phi.At(0, 0), math.Cos(h))
	encloses(t, phi.At(0, 1), math.Sin(h))
	encloses(t, phi.At(1, 0), -math.Sin(h))
	encloses(t, phi.At(2, 2), math.Exp(h))
	encloses(t, phi.At(2, 0), 0)
}

func TestBoxInitialConditionEnclosesPoints(t *testing.T) {
	g := field(t, 2, func(_ autodiff.Node, in, out []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Sin().Neg()
	})
	box := interval.Vector{interval.Must(0.9, 1.1), interval.Must(-0.1, 0.1)}
	s, err := PointCoefficients(g, interval.Point(0), box, 5)
	require.NoError(t, err)
	for _, x0 := range [][]float64{{0.9, -0.1}, {1.1, 0.1}, {1, 0}} {
		p, err := PointCoefficients(g, interval.Point(0), interval.PointVector(x0), 5)
		require.NoError(t, err)
		for k := 0; k <= 5; k++ {
			assert.True(t, s.Values(k).ContainsVector(p.Values(k)), "order %d at %v", k, x0)
		}
	}
}

func TestDimensionMismatch(t *testing.T) {
	g, err := autodiff.FromFunc(2, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[0]
	})
	require.NoError(t, err)
	_, err = PointCoefficients(g, interval.Point(0), interval.PointVector([]float64{1, 2}), 3)
	assert.Error(t, err)
}
