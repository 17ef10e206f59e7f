package interval

import (
	"math"

	"github.com/san-kum/rigsim/internal/rounding"
)

func mulDown(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return rounding.Down.Mul(x, y)
}

func mulUp(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return rounding.Up.Mul(x, y)
}

func min4(a, b, c, d float64) float64 { return math.Min(math.Min(a, b), math.Min(c, d)) }
func max4(a, b, c, d float64) float64 { return math.Max(math.Max(a, b), math.Max(c, d)) }

func (a Interval) Add(b Interval) Interval {
	return Interval{rounding.Down.Add(a.lo, b.lo), rounding.Up.Add(a.hi, b.hi)}
}

func (a Interval) Sub(b Interval) Interval {
	return Interval{rounding.Down.Sub(a.lo, b.hi), rounding.Up.Sub(a.hi, b.lo)}
}

func (a Interval) Neg() Interval {
	return Interval{-a.hi, -a.lo}
}

func (a Interval) Mul(b Interval) Interval {
	switch {
	case a.lo >= 0 && b.lo >= 0:
		return Interval{mulDown(a.lo, b.lo), mulUp(a.hi, b.hi)}
	case a.hi <= 0 && b.hi <= 0:
		return Interval{mulDown(a.hi, b.hi), mulUp(a.lo, b.lo)}
	case a.lo >= 0 && b.hi <= 0:
		return Interval{mulDown(a.hi, b.lo), mulUp(a.lo, b.hi)}
	case a.hi <= 0 && b.lo >= 0:
		return Interval{mulDown(a.lo, b.hi), mulUp(a.hi, b.lo)}
	}
	return Interval{
		min4(mulDown(a.lo, b.lo), mulDown(a.lo, b.hi), mulDown(a.hi, b.lo), mulDown(a.hi, b.hi)),
		max4(mulUp(a.lo, b.lo), mulUp(a.lo, b.hi), mulUp(a.hi, b.lo), mulUp(a.hi, b.hi)),
	}
}

// Scale returns c·a.
func (a Interval) Scale(c float64) Interval {
	return a.Mul(Point(c))
}

// Div returns a/b. It fails when b contains zero.
func (a Interval) Div(b Interval) (Interval, error) {
	if b.ContainsZero() {
		return Interval{}, &Error{Op: "div", Lo: b.lo, Hi: b.hi, Detail: "divisor contains zero"}
	}
	if b.IsEmpty() || a.IsEmpty() {
		return Interval{}, &Error{Op: "div", Lo: b.lo, Hi: b.hi, Detail: "empty operand"}
	}
	d, u := rounding.Down, rounding.Up
	var r Interval
	switch {
	case b.lo > 0 && a.lo >= 0:
		r = Interval{d.Div(a.lo, b.hi), u.Div(a.hi, b.lo)}
	case b.lo > 0 && a.hi <= 0:
		r = Interval{d.Div(a.lo, b.lo), u.Div(a.hi, b.hi)}
	case b.lo > 0:
		r = Interval{d.Div(a.lo, b.lo), u.Div(a.hi, b.lo)}
	case a.lo >= 0:
		r = Interval{d.Div(a.hi, b.hi), u.Div(a.lo, b.lo)}
	case a.hi <= 0:
		r = Interval{d.Div(a.hi, b.lo), u.Div(a.lo, b.hi)}
	default:
		r = Interval{d.Div(a.hi, b.hi), u.Div(a.lo, b.hi)}
	}
	return checked("div", b, r)
}

// DivInt returns a/k for a non-zero integer k.
func (a Interval) DivInt(k int) Interval {
	r, err := a.Div(Point(float64(k)))
	if err != nil {
		panic("interval: DivInt by zero")
	}
	return r
}

// Inv returns 1/a.
func (a Interval) Inv() (Interval, error) {
	if a.ContainsZero() {
		return Interval{}, undefined("inv", a, "operand contains zero")
	}
	return Point(1).Div(a)
}

// Sqr returns {x² : x in a}, which is tighter than a.Mul(a).
func (a Interval) Sqr() Interval {
	switch {
	case a.lo >= 0:
		return Interval{mulDown(a.lo, a.lo), mulUp(a.hi, a.hi)}
	case a.hi <= 0:
		return Interval{mulDown(a.hi, a.hi), mulUp(a.lo, a.lo)}
	}
	m := a.Mag()
	return Interval{0, mulUp(m, m)}
}

// Sqrt fails when a has a negative part.
func (a Interval) Sqrt() (Interval, error) {
	if a.lo < 0 || a.IsEmpty() {
		return Interval{}, undefined("sqrt", a, "negative operand")
	}
	return Interval{rounding.Down.Sqrt(a.lo), rounding.Up.Sqrt(a.hi)}, nil
}

// powPos returns bounds of x^n for x >= 0.
func powPos(x float64, n int, mode rounding.Mode) float64 {
	r := 1.0
	for n > 0 {
		if n&1 == 1 {
			r = mode.Mul(r, x)
		}
		x = mode.Mul(x, x)
		n >>= 1
	}
	return r
}

// Pow returns a^n for an integer n. Negative n requires a not containing zero.
func (a Interval) Pow(n int) (Interval, error) {
	switch {
	case n == 0:
		return Point(1), nil
	case n == 1:
		return a, nil
	case n == 2:
		return a.Sqr(), nil
	case n < 0:
		p, err := a.Pow(-n)
		if err != nil {
			return Interval{}, err
		}
		if p.ContainsZero() {
			return Interval{}, undefined("pow", a, "negative exponent on interval containing zero")
		}
		return p.Inv()
	}
	d, u := rounding.Down, rounding.Up
	if n%2 == 0 {
		mig, mag := a.Mig(), a.Mag()
		return Interval{powPos(mig, n, d), powPos(mag, n, u)}, nil
	}
	lo := powPos(math.Abs(a.lo), n, d)
	if a.lo < 0 {
		lo = -powPos(-a.lo, n, u)
	}
	hi := powPos(a.hi, n, u)
	if a.hi < 0 {
		hi = -powPos(-a.hi, n, d)
	}
	return Interval{lo, hi}, nil
}
