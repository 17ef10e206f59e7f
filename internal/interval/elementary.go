package interval

import (
	"math"

	"github.com/san-kum/rigsim/internal/rounding"
)

// libmUlps is the outward widening applied to math library results, which
// are faithful but not correctly rounded.
const libmUlps = 2

func down(x float64) float64 { return rounding.Down.Widen(x, libmUlps) }
func up(x float64) float64   { return rounding.Up.Widen(x, libmUlps) }

func (a Interval) Exp() Interval {
	lo := math.Max(down(math.Exp(a.lo)), 0)
	hi := math.Exp(a.hi)
	if !math.IsInf(hi, 1) {
		hi = up(hi)
	}
	return Interval{lo, hi}
}

// Log fails unless a is strictly positive.
func (a Interval) Log() (Interval, error) {
	if a.lo <= 0 || a.IsEmpty() {
		return Interval{}, undefined("log", a, "non-positive operand")
	}
	lo, hi := math.Log(a.lo), math.Log(a.hi)
	if a.lo != 1 {
		lo = down(lo)
	}
	if a.hi != 1 {
		hi = up(hi)
	}
	return Interval{lo, hi}, nil
}

func (a Interval) Atan() Interval {
	lo, hi := down(math.Atan(a.lo)), up(math.Atan(a.hi))
	h := HalfPi()
	return Interval{math.Max(lo, -h.hi), math.Min(hi, h.hi)}
}

// PowInterval returns a^c = exp(c·log a) for strictly positive a.
func (a Interval) PowInterval(c Interval) (Interval, error) {
	if c.IsPoint() && c.lo == math.Trunc(c.lo) && math.Abs(c.lo) < 1<<20 {
		return a.Pow(int(c.lo))
	}
	l, err := a.Log()
	if err != nil {
		return Interval{}, &Error{Op: "pow", Lo: a.lo, Hi: a.hi, Detail: "non-integer power of non-positive base"}
	}
	return c.Mul(l).Exp(), nil
}

func (a Interval) Sin() Interval {
	return trig(a, math.Sin, HalfPi())
}

func (a Interval) Cos() Interval {
	return trig(a, math.Cos, Point(0))
}

// trig bounds f over a where f has extrema at shift + kπ, a maximum for
// even k and a minimum for odd k. Extrema are located with an enclosure of
// π, so a critical point near a bound may be counted when it is not inside;
// that only widens the result.
func trig(a Interval, f func(float64) float64, shift Interval) Interval {
	full := Interval{-1, 1}
	if !a.IsFinite() || a.Width() >= 2*math.Pi {
		return full
	}
	k, err := a.Sub(shift).Div(Pi())
	if err != nil {
		return full
	}
	kmin, kmax := math.Ceil(k.lo), math.Floor(k.hi)
	if kmax-kmin >= 1 {
		return full
	}
	flo, fhi := f(a.lo), f(a.hi)
	r := Interval{down(math.Min(flo, fhi)), up(math.Max(flo, fhi))}
	if kmin == kmax {
		if math.Mod(kmin, 2) == 0 {
			r.hi = 1
		} else {
			r.lo = -1
		}
	}
	return Interval{math.Max(r.lo, -1), math.Min(r.hi, 1)}
}
