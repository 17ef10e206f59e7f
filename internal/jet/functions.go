package jet

import "github.com/san-kum/rigsim/internal/interval"

// Non-polynomial functions of a Poly. The constant term goes through the
// interval function; higher terms follow from the series recurrences applied
// to the homogeneous parts, whose degree plays the role of the series index.

// Div returns p/q. It fails when the constant term of q contains zero.
func (p Poly) Div(q Poly) (Poly, error) {
	if q.IsConstant() {
		r := Zero(p.l)
		for i, a := range p.c {
			if a.IsZero() && i > 0 {
				continue
			}
			v, err := a.Div(q.c[0])
			if err != nil {
				return Poly{}, err
			}
			r.c[i] = v
		}
		return r, nil
	}
	u, v := p.parts(), q.parts()
	r := make([]Poly, len(u))
	var err error
	if r[0], err = u[0].Div(v[0]); err != nil {
		return Poly{}, err
	}
	for k := 1; k < len(u); k++ {
		if r[k], err = DivCoeff(u, v, r, k); err != nil {
			return Poly{}, err
		}
	}
	return sum(p.l, r), nil
}

func (p Poly) Sqrt() (Poly, error) {
	r0, err := p.c[0].Sqrt()
	if err != nil {
		return Poly{}, err
	}
	if p.IsConstant() {
		return Constant(p.l, r0), nil
	}
	u := p.parts()
	r := make([]Poly, len(u))
	r[0] = Constant(p.l, r0)
	for k := 1; k < len(u); k++ {
		if r[k], err = SqrtCoeff(u, r, k); err != nil {
			return Poly{}, err
		}
	}
	return sum(p.l, r), nil
}

func (p Poly) Exp() Poly {
	if p.IsConstant() {
		return Constant(p.l, p.c[0].Exp())
	}
	u := p.parts()
	r := make([]Poly, len(u))
	r[0] = Constant(p.l, p.c[0].Exp())
	for k := 1; k < len(u); k++ {
		r[k] = ExpCoeff(u, r, k)
	}
	return sum(p.l, r)
}

func (p Poly) Log() (Poly, error) {
	r0, err := p.c[0].Log()
	if err != nil {
		return Poly{}, err
	}
	if p.IsConstant() {
		return Constant(p.l, r0), nil
	}
	u := p.parts()
	r := make([]Poly, len(u))
	r[0] = Constant(p.l, r0)
	for k := 1; k < len(u); k++ {
		if r[k], err = LogCoeff(u, r, k); err != nil {
			return Poly{}, err
		}
	}
	return sum(p.l, r), nil
}

// SinCos returns sin(p) and cos(p).
func (p Poly) SinCos() (Poly, Poly) {
	s0, c0 := p.c[0].Sin(), p.c[0].Cos()
	if p.IsConstant() {
		return Constant(p.l, s0), Constant(p.l, c0)
	}
	u := p.parts()
	s, c := make([]Poly, len(u)), make([]Poly, len(u))
	s[0], c[0] = Constant(p.l, s0), Constant(p.l, c0)
	for k := 1; k < len(u); k++ {
		s[k], c[k] = SinCosCoeff(u, s, c, k)
	}
	return sum(p.l, s), sum(p.l, c)
}

func (p Poly) Sin() Poly {
	s, _ := p.SinCos()
	return s
}

func (p Poly) Cos() Poly {
	_, c := p.SinCos()
	return c
}

func (p Poly) Atan() (Poly, error) {
	if p.IsConstant() {
		return Constant(p.l, p.c[0].Atan()), nil
	}
	u := p.parts()
	w := make([]Poly, len(u))
	r := make([]Poly, len(u))
	w[0] = Constant(p.l, p.c[0].Sqr().Add(interval.Point(1)))
	r[0] = Constant(p.l, p.c[0].Atan())
	var err error
	for k := 1; k < len(u); k++ {
		w[k] = SqrCoeff(u, k)
		if r[k], err = AtanCoeff(u, w, r, k); err != nil {
			return Poly{}, err
		}
	}
	return sum(p.l, r), nil
}

// Pow returns p^c for an interval exponent c; the constant term of p must be
// positive unless c is an exact integer.
func (p Poly) Pow(c interval.Interval) (Poly, error) {
	r0, err := p.c[0].PowInterval(c)
	if err != nil {
		return Poly{}, err
	}
	if p.IsConstant() {
		return Constant(p.l, r0), nil
	}
	u := p.parts()
	r := make([]Poly, len(u))
	r[0] = Constant(p.l, r0)
	for k := 1; k < len(u); k++ {
		if r[k], err = PowCoeff(u, r, c, k); err != nil {
			return Poly{}, err
		}
	}
	return sum(p.l, r), nil
}
