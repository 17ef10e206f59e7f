package rounding

import "math"

// Mode selects the rounding direction of a floating-point operation.
type Mode int

const (
	Nearest Mode = iota
	Down
	Up
)

// tiny is the magnitude below which residual terms may themselves underflow.
// Results in that range are widened by one ulp instead of classified exactly.
const tiny = 0x1p-960

func (m Mode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction. Nearest is its own opposite.
func (m Mode) Opposite() Mode {
	switch m {
	case Down:
		return Up
	case Up:
		return Down
	default:
		return Nearest
	}
}

// adjust moves the nearest result r toward the true value, whose position
// relative to r is given by the sign of err.
func (m Mode) adjust(r, err float64) float64 {
	switch m {
	case Down:
		if err < 0 {
			return math.Nextafter(r, math.Inf(-1))
		}
	case Up:
		if err > 0 {
			return math.Nextafter(r, math.Inf(1))
		}
	}
	return r
}

// overflow maps an infinite nearest result of finite operands to the
// directed result: rounding toward zero from an overflow yields MaxFloat64.
func (m Mode) overflow(r float64) float64 {
	switch {
	case m == Down && r > 0:
		return math.MaxFloat64
	case m == Up && r < 0:
		return -math.MaxFloat64
	}
	return r
}

// widen moves r one ulp in the direction of m. Used when the exact error
// cannot be recovered.
func (m Mode) widen(r float64) float64 {
	switch m {
	case Down:
		return math.Nextafter(r, math.Inf(-1))
	case Up:
		return math.Nextafter(r, math.Inf(1))
	}
	return r
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// Add returns a+b rounded in direction m.
func (m Mode) Add(a, b float64) float64 {
	s := a + b
	if m == Nearest || !finite(a) || !finite(b) {
		return s
	}
	if math.IsInf(s, 0) {
		return m.overflow(s)
	}
	bb := s - a
	err := (a - (s - bb)) + (b - bb)
	return m.adjust(s, err)
}

// Sub returns a-b rounded in direction m.
func (m Mode) Sub(a, b float64) float64 {
	return m.Add(a, -b)
}

// Mul returns a*b rounded in direction m.
func (m Mode) Mul(a, b float64) float64 {
	p := a * b
	if m == Nearest || !finite(a) || !finite(b) || a == 0 || b == 0 {
		return p
	}
	if math.IsInf(p, 0) {
		return m.overflow(p)
	}
	if math.Abs(p) < tiny {
		return m.widen(p)
	}
	return m.adjust(p, math.FMA(a, b, -p))
}

// Div returns a/b rounded in direction m. Division by zero follows IEEE.
func (m Mode) Div(a, b float64) float64 {
	q := a / b
	if m == Nearest || !finite(a) || !finite(b) || a == 0 || b == 0 {
		return q
	}
	if math.IsInf(q, 0) {
		return m.overflow(q)
	}
	if math.Abs(q) < tiny || math.Abs(b) < tiny {
		return m.widen(q)
	}
	// a - q*b has the sign of the error times the sign of b.
	r := math.FMA(-q, b, a)
	if b < 0 {
		r = -r
	}
	return m.adjust(q, r)
}

// Sqrt returns the square root of x rounded in direction m.
func (m Mode) Sqrt(x float64) float64 {
	s := math.Sqrt(x)
	if m == Nearest || !finite(s) || s == 0 {
		return s
	}
	if x < tiny {
		return m.widen(s)
	}
	return m.adjust(s, math.FMA(-s, s, x))
}

// Widen moves x by ulps units in the last place in direction m. It is used
// for library functions that are faithful but not correctly rounded.
func (m Mode) Widen(x float64, ulps int) float64 {
	if m == Nearest || math.IsNaN(x) {
		return x
	}
	for i := 0; i < ulps; i++ {
		x = m.widen(x)
	}
	return x
}
