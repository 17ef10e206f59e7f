package jet

import "github.com/san-kum/rigsim/internal/interval"

// Series recurrences. Each function returns coefficient k >= 1 of a
// composite series from the coefficients of its arguments and the already
// computed coefficients 0..k-1 of the result. Coefficients are polynomials,
// so the same recurrences serve two purposes: time series of an ODE
// solution whose coefficients are jets, and the expansion of a single
// polynomial in its homogeneous parts.

// MulCoeff returns coefficient k of u·v.
func MulCoeff(u, v []Poly, k int) Poly {
	r := u[0].Mul(v[k])
	for j := 1; j <= k; j++ {
		r = r.Add(u[j].Mul(v[k-j]))
	}
	return r
}

// SqrCoeff returns coefficient k of u².
func SqrCoeff(u []Poly, k int) Poly {
	r := Zero(u[0].l)
	for j := 0; 2*j < k; j++ {
		r = r.Add(u[j].Mul(u[k-j]))
	}
	r = r.Scale(interval.Point(2))
	if k%2 == 0 {
		r = r.Add(u[k/2].Sqr())
	}
	return r
}

// DivCoeff returns coefficient k of r = u/v.
func DivCoeff(u, v, r []Poly, k int) (Poly, error) {
	s := u[k]
	for j := 0; j < k; j++ {
		s = s.Sub(r[j].Mul(v[k-j]))
	}
	return s.Div(v[0])
}

// SqrtCoeff returns coefficient k of r = √u.
func SqrtCoeff(u, r []Poly, k int) (Poly, error) {
	s := u[k]
	for j := 1; j < k; j++ {
		s = s.Sub(r[j].Mul(r[k-j]))
	}
	return s.Div(r[0].Scale(interval.Point(2)))
}

// ExpCoeff returns coefficient k of r = exp(u).
func ExpCoeff(u, r []Poly, k int) Poly {
	s := Zero(u[0].l)
	for j := 1; j <= k; j++ {
		s = s.Add(u[j].Mul(r[k-j]).Scale(interval.Point(float64(j))))
	}
	return s.DivInt(k)
}

// LogCoeff returns coefficient k of r = log(u).
func LogCoeff(u, r []Poly, k int) (Poly, error) {
	s := Zero(u[0].l)
	for j := 1; j < k; j++ {
		s = s.Add(r[j].Mul(u[k-j]).Scale(interval.Point(float64(j))))
	}
	return u[k].Sub(s.DivInt(k)).Div(u[0])
}

// SinCosCoeff returns coefficient k of s = sin(u) and c = cos(u).
func SinCosCoeff(u, s, c []Poly, k int) (Poly, Poly) {
	ss, cs := Zero(u[0].l), Zero(u[0].l)
	for j := 1; j <= k; j++ {
		ju := u[j].Scale(interval.Point(float64(j)))
		ss = ss.Add(ju.Mul(c[k-j]))
		cs = cs.Add(ju.Mul(s[k-j]))
	}
	return ss.DivInt(k), cs.DivInt(k).Neg()
}

// AtanCoeff returns coefficient k of r = atan(u), where w is the series of
// 1 + u² with coefficients 0..k available.
func AtanCoeff(u, w, r []Poly, k int) (Poly, error) {
	s := Zero(u[0].l)
	for j := 1; j < k; j++ {
		s = s.Add(r[j].Mul(w[k-j]).Scale(interval.Point(float64(j))))
	}
	return u[k].Sub(s.DivInt(k)).Div(w[0])
}

// PowCoeff returns coefficient k of r = u^c for an interval exponent c.
func PowCoeff(u, r []Poly, c interval.Interval, k int) (Poly, error) {
	s := Zero(u[0].l)
	for j := 0; j < k; j++ {
		f := c.Scale(float64(k - j)).Sub(interval.Point(float64(j)))
		s = s.Add(r[j].Mul(u[k-j]).Scale(f))
	}
	return s.Div(u[0].Scale(interval.Point(float64(k))))
}
