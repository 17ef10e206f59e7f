package interval

import (
	"fmt"
	"math"

	"github.com/san-kum/rigsim/internal/rounding"
)

// Interval is the closed set {x : lo <= x <= hi}.
type Interval struct {
	lo, hi float64
}

// New returns [lo, hi]. It fails when lo > hi or a bound is NaN.
func New(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return Interval{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, lo, hi)
	}
	return Interval{lo, hi}, nil
}

// Must is like New but panics on invalid bounds.
func Must(lo, hi float64) Interval {
	iv, err := New(lo, hi)
	if err != nil {
		panic(err)
	}
	return iv
}

// Point returns the degenerate interval [x, x].
func Point(x float64) Interval {
	return Interval{x, x}
}

// Entire returns (-Inf, +Inf).
func Entire() Interval {
	return Interval{math.Inf(-1), math.Inf(1)}
}

// Empty returns the empty interval. Only Intersect produces it.
func Empty() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Radius returns [-r, r].
func Radius(r float64) Interval {
	r = math.Abs(r)
	return Interval{-r, r}
}

// Pi encloses π. math.Pi is the double just below π.
func Pi() Interval {
	return Interval{math.Pi, math.Nextafter(math.Pi, 4)}
}

// HalfPi encloses π/2.
func HalfPi() Interval {
	p := Pi()
	return Interval{p.lo / 2, p.hi / 2}
}

// TwoPi encloses 2π.
func TwoPi() Interval {
	p := Pi()
	return Interval{p.lo * 2, p.hi * 2}
}

func (a Interval) Lo() float64 { return a.lo }
func (a Interval) Hi() float64 { return a.hi }

func (a Interval) IsEmpty() bool {
	return math.IsNaN(a.lo) || math.IsNaN(a.hi)
}

func (a Interval) IsPoint() bool {
	return a.lo == a.hi
}

func (a Interval) IsZero() bool {
	return a.lo == 0 && a.hi == 0
}

func (a Interval) IsFinite() bool {
	return finite(a.lo) && finite(a.hi)
}

// Contains reports whether x lies in a.
func (a Interval) Contains(x float64) bool {
	return a.lo <= x && x <= a.hi
}

// ContainsZero reports whether 0 lies in a.
func (a Interval) ContainsZero() bool {
	return a.lo <= 0 && 0 <= a.hi
}

// ContainsInterval reports whether b is a subset of a.
func (a Interval) ContainsInterval(b Interval) bool {
	return a.lo <= b.lo && b.hi <= a.hi
}

// SubsetInterior reports whether a lies in the interior of b.
func (a Interval) SubsetInterior(b Interval) bool {
	return b.lo < a.lo && a.hi < b.hi
}

// Equal reports bitwise equality of the bounds.
func (a Interval) Equal(b Interval) bool {
	return a.lo == b.lo && a.hi == b.hi
}

// Hull returns the smallest interval containing a and b.
func Hull(a, b Interval) Interval {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return Interval{math.Min(a.lo, b.lo), math.Max(a.hi, b.hi)}
}

// HullPoint extends a to contain x.
func (a Interval) HullPoint(x float64) Interval {
	return Hull(a, Point(x))
}

// Intersect returns a ∩ b and whether it is non-empty.
func Intersect(a, b Interval) (Interval, bool) {
	lo, hi := math.Max(a.lo, b.lo), math.Min(a.hi, b.hi)
	if lo > hi || a.IsEmpty() || b.IsEmpty() {
		return Empty(), false
	}
	return Interval{lo, hi}, true
}

// Mid returns a floating-point number inside a close to its center.
func (a Interval) Mid() float64 {
	if a.lo == a.hi {
		return a.lo
	}
	if math.IsInf(a.lo, -1) && math.IsInf(a.hi, 1) {
		return 0
	}
	if math.IsInf(a.lo, -1) {
		return -math.MaxFloat64
	}
	if math.IsInf(a.hi, 1) {
		return math.MaxFloat64
	}
	m := a.lo/2 + a.hi/2
	return math.Min(math.Max(m, a.lo), a.hi)
}

// Rad returns an upper bound on the distance from Mid to either bound.
func (a Interval) Rad() float64 {
	m := a.Mid()
	return math.Max(rounding.Up.Sub(a.hi, m), rounding.Up.Sub(m, a.lo))
}

// Width returns an upper bound on hi - lo.
func (a Interval) Width() float64 {
	return rounding.Up.Sub(a.hi, a.lo)
}

// Mag returns max |x| over a.
func (a Interval) Mag() float64 {
	return math.Max(math.Abs(a.lo), math.Abs(a.hi))
}

// Mig returns min |x| over a.
func (a Interval) Mig() float64 {
	if a.ContainsZero() {
		return 0
	}
	return math.Min(math.Abs(a.lo), math.Abs(a.hi))
}

// Abs returns {|x| : x in a}.
func (a Interval) Abs() Interval {
	return Interval{a.Mig(), a.Mag()}
}

// Split returns the center point m and a remainder r with a ⊆ m + r.
func (a Interval) Split() (m, r Interval) {
	c := a.Mid()
	return Point(c), Interval{rounding.Down.Sub(a.lo, c), rounding.Up.Sub(a.hi, c)}
}

// Inflate returns [lo - eps, hi + eps] rounded outward.
func (a Interval) Inflate(eps float64) Interval {
	return Interval{rounding.Down.Sub(a.lo, eps), rounding.Up.Add(a.hi, eps)}
}

// Expand stretches a about its midpoint by factor f, rounded outward.
func (a Interval) Expand(f float64) Interval {
	m, r := a.Split()
	return m.Add(r.Mul(Point(f)))
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// checked turns a NaN bound into an error for op.
func checked(op string, arg, res Interval) (Interval, error) {
	if math.IsNaN(res.lo) || math.IsNaN(res.hi) {
		return Interval{}, undefined(op, arg, "result is not a number")
	}
	return res, nil
}
