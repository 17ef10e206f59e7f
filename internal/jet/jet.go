package jet

import (
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
)

// Jet holds the truncated Taylor expansion of a map R^n -> R^m about a
// point: one Poly per output. Coefficients are normalized, i.e. the
// coefficient of α is the partial derivative of order α divided by α!.
type Jet struct {
	l     *Layout
	polys []Poly
}

// New returns a zero jet with m outputs over layout l.
func New(m int, l *Layout) *Jet {
	j := &Jet{l: l, polys: make([]Poly, m)}
	for i := range j.polys {
		j.polys[i] = Zero(l)
	}
	return j
}

// FromPolys wraps polynomials sharing one layout.
func FromPolys(ps []Poly) (*Jet, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("jet: no polynomials")
	}
	l := ps[0].l
	for i, p := range ps {
		if p.l != l {
			return nil, fmt.Errorf("jet: polynomial %d uses a different layout", i)
		}
	}
	return &Jet{l: l, polys: append([]Poly(nil), ps...)}, nil
}

// Dims returns the output and input dimensions.
func (j *Jet) Dims() (m, n int) { return len(j.polys), j.l.n }

func (j *Jet) Degree() int { return j.l.d }

func (j *Jet) Layout() *Layout { return j.l }

func (j *Jet) Poly(i int) Poly { return j.polys[i] }

func (j *Jet) Value(i int) interval.Interval { return j.polys[i].c[0] }

// Values returns the constant terms of all outputs.
func (j *Jet) Values() interval.Vector {
	v := make(interval.Vector, len(j.polys))
	for i := range v {
		v[i] = j.Value(i)
	}
	return v
}

// Coefficient returns the normalized coefficient of output i at α.
func (j *Jet) Coefficient(i int, alpha Multiindex) interval.Interval {
	return j.polys[i].At(alpha)
}

// SetCoefficient sets the normalized coefficient of output i at α.
func (j *Jet) SetCoefficient(i int, alpha Multiindex, v interval.Interval) error {
	pos, ok := j.l.Index(alpha)
	if !ok {
		return fmt.Errorf("jet: multiindex %v outside layout of degree %d", alpha, j.l.d)
	}
	j.polys[i] = j.polys[i].With(pos, v)
	return nil
}

// Derivative returns the partial derivative of output i of order α.
func (j *Jet) Derivative(i int, alpha Multiindex) interval.Interval {
	return j.Coefficient(i, alpha).Mul(interval.Point(alpha.Factorial()))
}

// Jacobian returns the m×n matrix of first derivatives.
func (j *Jet) Jacobian() interval.Matrix {
	m, n := j.Dims()
	jac := interval.NewMatrix(m, n)
	if j.l.d < 1 {
		return jac
	}
	for r := 0; r < m; r++ {
		for c := 0; c < n; c++ {
			jac.Set(r, c, j.polys[r].c[1+c])
		}
	}
	return jac
}

// Eval evaluates the truncated expansion at the displacement delta.
func (j *Jet) Eval(delta interval.Vector) interval.Vector {
	v := make(interval.Vector, len(j.polys))
	for i, p := range j.polys {
		v[i] = p.Eval(delta)
	}
	return v
}
