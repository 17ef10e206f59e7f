// Package taylor computes Taylor coefficients of ODE solutions x' = f(t, x)
// by propagating series through the vector field graph: the coefficient of
// order k+1 of x is the coefficient of order k of f(t, x(t)) divided by k+1.
package taylor

import (
	"fmt"
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/jet"
)

// Series holds x_0..x_order of the solution through x_0. Each coefficient is
// a jet polynomial, so it carries derivatives with respect to the initial
// condition when the layout degree is positive.
type Series struct {
	l      *jet.Layout
	coeffs [][]jet.Poly
}

// Coefficients expands the solution of x' = g(t, x) starting at time t0 from
// x0 up to the given order.
func Coefficients(g *autodiff.Graph, t0 interval.Interval, x0 []jet.Poly, order int) (*Series, error) {
	if g.DimIn() != g.DimOut() {
		return nil, fmt.Errorf("taylor: vector field maps R^%d to R^%d", g.DimIn(), g.DimOut())
	}
	if len(x0) == 0 {
		return nil, fmt.Errorf("taylor: empty initial condition")
	}
	l := x0[0].Layout()
	ev, err := autodiff.NewEvaluator(g, l, order)
	if err != nil {
		return nil, err
	}
	if err := ev.Reset(t0, x0); err != nil {
		return nil, err
	}
	s := &Series{l: l, coeffs: make([][]jet.Poly, order+1)}
	s.coeffs[0] = append([]jet.Poly(nil), x0...)
	n := len(x0)
	for k := 0; k < order; k++ {
		if err := ev.ComputeCoeff(k); err != nil {
			return nil, fmt.Errorf("taylor: order %d: %w", k+1, err)
		}
		next := make([]jet.Poly, n)
		for i := 0; i < n; i++ {
			next[i] = ev.Output(i, k).DivInt(k + 1)
			ev.SetVarCoeff(i, k+1, next[i])
		}
		s.coeffs[k+1] = next
	}
	return s, nil
}

// PointCoefficients expands without derivatives from an interval point.
func PointCoefficients(g *autodiff.Graph, t0 interval.Interval, x0 interval.Vector, order int) (*Series, error) {
	l := jet.NewLayout(len(x0), 0)
	return Coefficients(g, t0, constants(l, x0), order)
}

// LinearCoefficients expands with first derivatives with respect to the
// initial condition over the box x0.
func LinearCoefficients(g *autodiff.Graph, t0 interval.Interval, x0 interval.Vector, order int) (*Series, error) {
	l := jet.NewLayout(len(x0), 1)
	vars := make([]jet.Poly, len(x0))
	for i := range vars {
		vars[i] = jet.Variable(l, i, x0[i])
	}
	return Coefficients(g, t0, vars, order)
}

func constants(l *jet.Layout, x interval.Vector) []jet.Poly {
	ps := make([]jet.Poly, len(x))
	for i := range ps {
		ps[i] = jet.Constant(l, x[i])
	}
	return ps
}

func (s *Series) Order() int { return len(s.coeffs) - 1 }
func (s *Series) Dim() int   { return len(s.coeffs[0]) }

func (s *Series) Layout() *jet.Layout { return s.l }

// Coeff returns coefficient k of every coordinate.
func (s *Series) Coeff(k int) []jet.Poly { return s.coeffs[k] }

// Values returns the constant terms of coefficient k.
func (s *Series) Values(k int) interval.Vector {
	v := make(interval.Vector, s.Dim())
	for i, p := range s.coeffs[k] {
		v[i] = p.Value()
	}
	return v
}

// Matrix returns ∂x_k/∂x_0, the linear part of coefficient k. The layout
// degree must be at least one.
func (s *Series) Matrix(k int) interval.Matrix {
	n := s.Dim()
	m := interval.NewMatrix(n, n)
	for i, p := range s.coeffs[k] {
		for j := 0; j < n; j++ {
			m.Set(i, j, p.Coeff(1+j))
		}
	}
	return m
}

// Norm returns max over coordinates of the magnitude of the constant term
// of coefficient k.
func (s *Series) Norm(k int) float64 {
	n := 0.0
	for _, p := range s.coeffs[k] {
		n = math.Max(n, p.Value().Mag())
	}
	return n
}

// Sum evaluates Σ_{k=0}^{order} x_k h^k by Horner's scheme.
func (s *Series) Sum(h interval.Interval) []jet.Poly {
	p := s.Order()
	r := append([]jet.Poly(nil), s.coeffs[p]...)
	for k := p - 1; k >= 0; k-- {
		for i := range r {
			r[i] = r[i].Scale(h).Add(s.coeffs[k][i])
		}
	}
	return r
}

// SumValues is Sum restricted to the constant terms.
func (s *Series) SumValues(h interval.Interval) interval.Vector {
	ps := s.Sum(h)
	v := make(interval.Vector, len(ps))
	for i, p := range ps {
		v[i] = p.Value()
	}
	return v
}

// SumMatrix evaluates the linear part of Sum: Σ ∂x_k/∂x_0 h^k.
func (s *Series) SumMatrix(h interval.Interval) interval.Matrix {
	n := s.Dim()
	ps := s.Sum(h)
	m := interval.NewMatrix(n, n)
	for i, p := range ps {
		for j := 0; j < n; j++ {
			m.Set(i, j, p.Coeff(1+j))
		}
	}
	return m
}
