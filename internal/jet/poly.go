package jet

import (
	"github.com/san-kum/rigsim/internal/interval"
)

// Poly is a polynomial in the layout's variables truncated at the layout
// degree, with interval coefficients. Polys are values: operations return
// new polynomials and never modify their operands.
type Poly struct {
	l *Layout
	c []interval.Interval
}

// Zero returns the zero polynomial.
func Zero(l *Layout) Poly {
	return Poly{l: l, c: make([]interval.Interval, l.Size())}
}

// Constant returns the polynomial v.
func Constant(l *Layout, v interval.Interval) Poly {
	p := Zero(l)
	p.c[0] = v
	return p
}

// Variable returns v + x_i, the identity in variable i shifted to v.
func Variable(l *Layout, i int, v interval.Interval) Poly {
	p := Constant(l, v)
	if l.d > 0 {
		p.c[1+i] = interval.Point(1)
	}
	return p
}

func (p Poly) Layout() *Layout { return p.l }

// Value returns the constant term.
func (p Poly) Value() interval.Interval { return p.c[0] }

// Coeff returns the coefficient at layout position i.
func (p Poly) Coeff(i int) interval.Interval { return p.c[i] }

// At returns the coefficient of the monomial mi, zero when outside the layout.
func (p Poly) At(mi Multiindex) interval.Interval {
	i, ok := p.l.Index(mi)
	if !ok {
		return interval.Point(0)
	}
	return p.c[i]
}

// With returns a copy of p whose coefficient at position i is v.
func (p Poly) With(i int, v interval.Interval) Poly {
	q := p.clone()
	q.c[i] = v
	return q
}

func (p Poly) clone() Poly {
	return Poly{l: p.l, c: append([]interval.Interval(nil), p.c...)}
}

// IsConstant reports whether every non-constant coefficient is zero.
func (p Poly) IsConstant() bool {
	for _, x := range p.c[1:] {
		if !x.IsZero() {
			return false
		}
	}
	return true
}

func (p Poly) IsZero() bool {
	return p.c[0].IsZero() && p.IsConstant()
}

func (p Poly) Add(q Poly) Poly {
	r := Zero(p.l)
	for i := range p.c {
		r.c[i] = p.c[i].Add(q.c[i])
	}
	return r
}

func (p Poly) Sub(q Poly) Poly {
	r := Zero(p.l)
	for i := range p.c {
		r.c[i] = p.c[i].Sub(q.c[i])
	}
	return r
}

func (p Poly) Neg() Poly {
	r := Zero(p.l)
	for i := range p.c {
		r.c[i] = p.c[i].Neg()
	}
	return r
}

// AddConst adds v to the constant term.
func (p Poly) AddConst(v interval.Interval) Poly {
	return p.With(0, p.c[0].Add(v))
}

// Scale multiplies every coefficient by v.
func (p Poly) Scale(v interval.Interval) Poly {
	r := Zero(p.l)
	for i := range p.c {
		if !p.c[i].IsZero() {
			r.c[i] = p.c[i].Mul(v)
		}
	}
	return r
}

// DivInt divides every coefficient by the non-zero integer k.
func (p Poly) DivInt(k int) Poly {
	r := Zero(p.l)
	for i := range p.c {
		if !p.c[i].IsZero() {
			r.c[i] = p.c[i].DivInt(k)
		}
	}
	return r
}

// Mul returns the truncated product.
func (p Poly) Mul(q Poly) Poly {
	if p.IsConstant() {
		return q.Scale(p.c[0])
	}
	if q.IsConstant() {
		return p.Scale(q.c[0])
	}
	r := Zero(p.l)
	for i, a := range p.c {
		if a.IsZero() {
			continue
		}
		for _, pr := range p.l.prod[i] {
			b := q.c[pr.j]
			if b.IsZero() {
				continue
			}
			r.c[pr.target] = r.c[pr.target].Add(a.Mul(b))
		}
	}
	return r
}

// Sqr returns p·p.
func (p Poly) Sqr() Poly {
	if p.IsConstant() {
		return Constant(p.l, p.c[0].Sqr())
	}
	return p.Mul(p)
}

// Homogeneous returns the degree-k part of p.
func (p Poly) Homogeneous(k int) Poly {
	r := Zero(p.l)
	from, to := p.l.DegreeRange(k)
	copy(r.c[from:to], p.c[from:to])
	return r
}

// parts splits p into its homogeneous parts of degree 0..d.
func (p Poly) parts() []Poly {
	ps := make([]Poly, p.l.d+1)
	for k := range ps {
		ps[k] = p.Homogeneous(k)
	}
	return ps
}

func sum(l *Layout, ps []Poly) Poly {
	r := Zero(l)
	for _, q := range ps {
		r = r.Add(q)
	}
	return r
}

// Eval evaluates p at the displacement delta from the expansion point.
func (p Poly) Eval(delta []interval.Interval) interval.Interval {
	s := interval.Point(0)
	for i, a := range p.c {
		if a.IsZero() {
			continue
		}
		term := a
		for v, k := range p.l.index[i] {
			if k == 0 {
				continue
			}
			pw, _ := delta[v].Pow(k)
			term = term.Mul(pw)
		}
		s = s.Add(term)
	}
	return s
}
