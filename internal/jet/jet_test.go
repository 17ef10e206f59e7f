package jet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigsim/internal/interval"
)

func assertEncloses(t *testing.T, got interval.Interval, want float64, msgAndArgs ...interface{}) {
	t.Helper()
	tol := 1e-13 * math.Max(1, math.Abs(want))
	assert.True(t, got.Lo() <= want+tol && want-tol <= got.Hi(), "%v does not enclose %v %v", got, want, msgAndArgs)
	assert.Less(t, got.Width(), 1e-10, msgAndArgs...)
}

func TestMultiindexMultipointerBijection(t *testing.T) {
	l := NewLayout(3, 4)
	for i := 0; i < l.Size(); i++ {
		mi := l.Multiindex(i)
		mp := mi.ToMultipointer()
		back, err := mp.ToMultiindex(3)
		require.NoError(t, err)
		assert.Equal(t, mi, back)
		assert.Equal(t, mi.Factorial(), mp.Factorial())
	}
	_, err := Multipointer{0, 5}.ToMultiindex(3)
	assert.Error(t, err)
}

func TestNewMultipointerIsCanonical(t *testing.T) {
	assert.Equal(t, Multipointer{0, 1, 1, 2}, NewMultipointer(1, 2, 0, 1))
	assert.Equal(t, 2.0, NewMultipointer(1, 1, 0).Factorial())
}

func TestLayoutGradedOrder(t *testing.T) {
	l := NewLayout(2, 3)
	require.Equal(t, 10, l.Size())
	want := []Multiindex{
		{0, 0},
		{1, 0}, {0, 1},
		{2, 0}, {1, 1}, {0, 2},
		{3, 0}, {2, 1}, {1, 2}, {0, 3},
	}
	for i, mi := range want {
		assert.Equal(t, mi, l.Multiindex(i))
		pos, ok := l.Index(mi)
		assert.True(t, ok)
		assert.Equal(t, i, pos)
	}
	from, to := l.DegreeRange(2)
	assert.Equal(t, 3, from)
	assert.Equal(t, 6, to)
	_, ok := l.Index(Multiindex{4, 0})
	assert.False(t, ok)
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, 10.0, Binomial(5, 2))
	assert.Equal(t, 1.0, Binomial(7, 0))
	assert.Equal(t, 0.0, Binomial(3, 4))
}

func x0(l *Layout) Poly { return Variable(l, 0, interval.Point(0)) }

func TestPolyElementaryScalar(t *testing.T) {
	const d = 6
	l := NewLayout(1, d)
	x := x0(l)
	one := Constant(l, interval.Point(1))

	expX := x.Exp()
	sinX, cosX := x.SinCos()
	geo, err := one.Div(one.Sub(x))
	require.NoError(t, err)
	logX, err := one.Add(x).Log()
	require.NoError(t, err)
	sqrtX, err := one.Add(x).Sqrt()
	require.NoError(t, err)
	powX, err := one.Add(x).Pow(interval.Point(0.5))
	require.NoError(t, err)
	atanX, err := x.Atan()
	require.NoError(t, err)

	for k := 0; k <= d; k++ {
		mi := Multiindex{k}
		fk := factorial(k)
		assertEncloses(t, expX.At(mi), 1/fk, "exp", k)
		assertEncloses(t, geo.At(mi), 1, "geometric", k)

		var s, c float64
		switch k % 4 {
		case 0:
			c = 1 / fk
		case 1:
			s = 1 / fk
		case 2:
			c = -1 / fk
		case 3:
			s = -1 / fk
		}
		assertEncloses(t, sinX.At(mi), s, "sin", k)
		assertEncloses(t, cosX.At(mi), c, "cos", k)

		lg := 0.0
		if k > 0 {
			lg = math.Pow(-1, float64(k+1)) / float64(k)
		}
		assertEncloses(t, logX.At(mi), lg, "log", k)

		// (1+x)^(1/2) = Σ C(1/2, k) x^k
		b := 1.0
		for j := 0; j < k; j++ {
			b *= (0.5 - float64(j)) / float64(j+1)
		}
		assertEncloses(t, sqrtX.At(mi), b, "sqrt", k)
		assertEncloses(t, powX.At(mi), b, "pow", k)

		at := 0.0
		if k%2 == 1 {
			at = math.Pow(-1, float64(k/2)) / float64(k)
		}
		assertEncloses(t, atanX.At(mi), at, "atan", k)
	}
}

func TestPolyMultivariateProduct(t *testing.T) {
	l := NewLayout(3, 4)
	x := Variable(l, 0, interval.Point(1))
	y := Variable(l, 1, interval.Point(2))
	z := Variable(l, 2, interval.Point(-1))

	// (1+dx)(2+dy)(-1+dz) expanded about the origin of the displacement.
	p := x.Mul(y).Mul(z)
	assertEncloses(t, p.Value(), -2)
	assertEncloses(t, p.At(Multiindex{1, 0, 0}), -2)
	assertEncloses(t, p.At(Multiindex{0, 1, 0}), -1)
	assertEncloses(t, p.At(Multiindex{0, 0, 1}), 2)
	assertEncloses(t, p.At(Multiindex{1, 1, 1}), 1)
	assertEncloses(t, p.At(Multiindex{2, 0, 0}), 0)

	// exp(x+y+z) has coefficient e^2/α! at every α.
	e := x.Add(y).Add(z).Exp()
	for i := 0; i < l.Size(); i++ {
		mi := l.Multiindex(i)
		assertEncloses(t, e.Coeff(i), math.Exp(2)/mi.Factorial(), mi)
	}
}

func TestPolyDivByZeroConstantFails(t *testing.T) {
	l := NewLayout(1, 3)
	x := x0(l)
	_, err := Constant(l, interval.Point(1)).Div(x)
	require.ErrorIs(t, err, interval.ErrUndefined)
	_, err = x.Log()
	require.ErrorIs(t, err, interval.ErrUndefined)
}

func TestPolyEvalMatchesFunction(t *testing.T) {
	l := NewLayout(2, 8)
	x := Variable(l, 0, interval.Point(0))
	y := Variable(l, 1, interval.Point(0))
	p := x.Add(y.Scale(interval.Point(2))).Sin()
	delta := interval.Vector{interval.Point(0.01), interval.Point(-0.02)}
	got := p.Eval(delta)
	want := math.Sin(0.01 - 0.04)
	assert.InDelta(t, want, got.Mid(), 1e-14)
}

func TestJetDerivativeAndJacobian(t *testing.T) {
	l := NewLayout(2, 3)
	x := Variable(l, 0, interval.Point(0.5))
	y := Variable(l, 1, interval.Point(2))
	j, err := FromPolys([]Poly{x.Mul(y), x.Sqr().Mul(y)})
	require.NoError(t, err)

	m, n := j.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)

	jac := j.Jacobian()
	assertEncloses(t, jac.At(0, 0), 2)
	assertEncloses(t, jac.At(0, 1), 0.5)
	assertEncloses(t, jac.At(1, 0), 2*0.5*2)
	assertEncloses(t, jac.At(1, 1), 0.25)

	// ∂²(x²y)/∂x² = 2y
	assertEncloses(t, j.Derivative(1, Multiindex{2, 0}), 4)
	// ∂³(x²y)/∂x²∂y = 2
	assertEncloses(t, j.Derivative(1, Multiindex{2, 1}), 2)

	require.NoError(t, j.SetCoefficient(0, Multiindex{0, 0}, interval.Point(7)))
	assert.Equal(t, interval.Point(7), j.Value(0))
	assert.Error(t, j.SetCoefficient(0, Multiindex{4, 0}, interval.Point(1)))
}

func TestSeriesRecurrencesInTime(t *testing.T) {
	// Scalar series with degree-0 coefficients: u(t) = 1 + t.
	l := NewLayout(0, 0)
	const order = 6
	u := make([]Poly, order+1)
	for k := range u {
		u[k] = Zero(l)
	}
	u[0] = Constant(l, interval.Point(1))
	u[1] = Constant(l, interval.Point(1))

	r := make([]Poly, order+1)
	r[0] = u[0].Exp()
	for k := 1; k <= order; k++ {
		r[k] = ExpCoeff(u, r, k)
		assertEncloses(t, r[k].Value(), math.E/factorial(k), "exp(1+t)", k)
	}

	inv := make([]Poly, order+1)
	one := make([]Poly, order+1)
	for k := range one {
		one[k] = Zero(l)
	}
	one[0] = Constant(l, interval.Point(1))
	var err error
	inv[0], err = one[0].Div(u[0])
	require.NoError(t, err)
	for k := 1; k <= order; k++ {
		inv[k], err = DivCoeff(one, u, inv, k)
		require.NoError(t, err)
		assertEncloses(t, inv[k].Value(), math.Pow(-1, float64(k)), "1/(1+t)", k)
	}
}
