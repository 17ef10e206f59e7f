package dynset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigsim/internal/interval"
)

func rotation(theta float64) interval.Matrix {
	a := interval.Point(theta)
	c, s := a.Cos(), a.Sin()
	m := interval.NewMatrix(2, 2)
	m.Set(0, 0, c)
	m.Set(0, 1, s.Neg())
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}

func rotate(t *testing.T, d *Doubleton, m interval.Matrix, steps int, eps float64) *Doubleton {
	t.Helper()
	rem := interval.Vector{interval.Radius(eps), interval.Radius(eps)}
	for i := 0; i < steps; i++ {
		base := d.Base()
		next, err := d.Move(d.Time, base, m.MulVec(base), rem, m)
		require.NoError(t, err)
		d = next
	}
	return d
}

func TestNewCoversBox(t *testing.T) {
	box := interval.Vector{interval.Must(0.9, 1.1), interval.Must(-0.2, 0.3)}
	d := New(interval.Point(0), box)
	assert.Equal(t, 2, d.Dim())
	assert.True(t, d.Hull().ContainsVector(box))
	assert.True(t, d.Contains([]float64{1, 0.3}))
	assert.False(t, d.Contains([]float64{1.2, 0}))
	assert.InDelta(t, 0.5, d.Width(), 1e-15)
}

func TestMoveKeepsRotatedBoxTight(t *testing.T) {
	box := interval.Vector{interval.Must(0.9, 1.1), interval.Must(-0.1, 0.1)}
	const theta, steps = math.Pi / 16, 32
	m := rotation(theta)

	// 32 steps of π/16 is a full turn: the set returns onto the box.
	d := rotate(t, New(interval.Point(0), box), m, steps, 0)
	for _, p := range [][]float64{{0.91, -0.09}, {0.91, 0.09}, {1.09, -0.09}, {1.09, 0.09}} {
		assert.True(t, d.Contains(p), "set misses %v", p)
	}
	assert.Less(t, d.Width(), 0.2+1e-9)
}

func TestQRBasisLimitsWrapping(t *testing.T) {
	box := interval.Vector{interval.Must(0.9, 1.1), interval.Must(-0.1, 0.1)}
	m := rotation(math.Pi / 16)
	qr := rotate(t, New(interval.Point(0), box), m, 32, 1e-3)
	flat := rotate(t, New(interval.Point(0), box).WithPolicy(Identity), m, 32, 1e-3)

	assert.True(t, qr.Contains([]float64{1.09, 0.09}))
	assert.True(t, flat.Contains([]float64{1.09, 0.09}))
	assert.Less(t, qr.Width(), flat.Width())
	assert.Less(t, qr.Width(), 0.2+6*32*1e-3)
}

func TestMoveContainsImageOfPoints(t *testing.T) {
	box := interval.Vector{interval.Must(-0.5, 0.5), interval.Must(1, 2)}
	d := New(interval.Point(0), box)
	// Linear map with a shear.
	m := interval.PointMatrix(2, 2, []float64{1, 0.5, -0.25, 1.5})
	moved := rotate(t, d, m, 5, 0)

	for _, x := range [][]float64{{-0.4, 1.1}, {0.4, 1.9}, {0, 1.5}, {0.4, 1.1}} {
		y := x
		for i := 0; i < 5; i++ {
			y = []float64{y[0] + 0.5*y[1], -0.25*y[0] + 1.5*y[1]}
		}
		assert.True(t, moved.Contains(y), "image %v of %v missing from %v", y, x, moved.Hull())
	}
}

func TestMoveDimensionMismatch(t *testing.T) {
	d := New(interval.Point(0), interval.Vector{interval.Point(1), interval.Point(2)})
	_, err := d.Move(d.Time, interval.NewVector(3), interval.NewVector(2), interval.NewVector(2), interval.Identity(2))
	assert.True(t, errors.Is(err, ErrDimension))
	_, err = d.Move(d.Time, d.Base(), interval.NewVector(2), interval.NewVector(2), interval.Identity(3))
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestMoveDoesNotAlias(t *testing.T) {
	box := interval.Vector{interval.Must(0, 1), interval.Must(0, 1)}
	d := New(interval.Point(0), box)
	before := d.Clone()
	_ = rotate(t, d, rotation(0.3), 1, 0)
	assert.Equal(t, before.X, d.X)
	assert.Equal(t, before.R, d.R)
}

func TestBasisInverseIsVerified(t *testing.T) {
	m := interval.PointMatrix(3, 3, []float64{
		2, 1, 0,
		0.5, 3, 1,
		1, 0, 4,
	})
	b, binv := basis(m, QR)
	prod := binv.Mul(b)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.True(t, prod.At(i, j).Contains(want), "(B⁻¹B)[%d][%d] = %v", i, j, prod.At(i, j))
			assert.Less(t, prod.At(i, j).Width(), 1e-12)
		}
	}

	b, binv = basis(m, Identity)
	assert.Equal(t, interval.Identity(3), b)
	assert.Equal(t, interval.Identity(3), binv)
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("identity")
	assert.True(t, ok)
	assert.Equal(t, Identity, p)
	_, ok = ParsePolicy("lu")
	assert.False(t, ok)
	assert.Equal(t, "qr", QR.String())
}
