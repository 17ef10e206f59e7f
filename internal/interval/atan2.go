package interval

import "math"

// anglePoint encloses the principal angle of the point (x, y) in (-π, π].
// The plane is covered by four overlapping sectors; in each one the atan
// argument has magnitude at most one, which keeps its enclosure tight. On
// the diagonals either formula may be used, the results agree.
func anglePoint(x, y float64) Interval {
	px, py := Point(x), Point(y)
	if math.Abs(y) <= math.Abs(x) {
		q, _ := py.Div(px)
		r := q.Atan()
		if x > 0 {
			return r
		}
		if math.Signbit(y) && y != 0 {
			return r.Sub(Pi())
		}
		return r.Add(Pi())
	}
	q, _ := px.Div(py)
	if y > 0 {
		return HalfPi().Sub(q.Atan())
	}
	return HalfPi().Neg().Sub(q.Atan())
}

// Atan2 encloses the angles of all points (x, y) of the box x × y, with x
// the cosine-like and y the sine-like coordinate.
//
// The result lies in (-π, π] except for boxes crossing the negative real
// axis: there the lower bound comes from the upper half plane and, when the
// upper bound computed in the lower half plane is negative, 2π is added to
// it, giving [a, b+2π] with a <= π <= b+2π.
//
// Boxes containing the origin have no defined angle and yield an *Error.
func Atan2(x, y Interval) (Interval, error) {
	if x.IsEmpty() || y.IsEmpty() {
		return Interval{}, &Error{Op: "atan2", Lo: x.lo, Hi: x.hi, Detail: "empty operand"}
	}
	if x.ContainsZero() && y.ContainsZero() {
		return Interval{}, &Error{Op: "atan2", Lo: x.lo, Hi: x.hi, Detail: "box contains the origin"}
	}
	hp := HalfPi()
	var lo, hi Interval
	switch {
	case y.lo > 0:
		switch {
		case x.hi > 0:
			lo = anglePoint(x.hi, y.lo)
		case x.hi < 0:
			lo = anglePoint(x.hi, y.hi)
		default:
			lo = hp
		}
		switch {
		case x.lo > 0:
			hi = anglePoint(x.lo, y.hi)
		case x.lo < 0:
			hi = anglePoint(x.lo, y.lo)
		default:
			hi = hp
		}
	case y.hi < 0:
		switch {
		case x.lo < 0:
			lo = anglePoint(x.lo, y.hi)
		case x.lo > 0:
			lo = anglePoint(x.lo, y.lo)
		default:
			lo = hp.Neg()
		}
		switch {
		case x.hi < 0:
			hi = anglePoint(x.hi, y.lo)
		case x.hi > 0:
			hi = anglePoint(x.hi, y.hi)
		default:
			hi = hp.Neg()
		}
	case x.lo > 0:
		lo = anglePoint(x.lo, y.lo)
		hi = anglePoint(x.lo, y.hi)
	default:
		// x.hi < 0 and y straddles zero: the box crosses the negative real axis.
		lo = Pi()
		if y.hi > 0 {
			lo = anglePoint(x.hi, y.hi)
		}
		hi = Pi()
		if y.lo < 0 {
			hi = anglePoint(x.hi, y.lo)
		}
		if hi.hi < 0 {
			hi = hi.Add(TwoPi())
		}
	}
	return Interval{math.Min(lo.lo, hi.lo), math.Max(lo.hi, hi.hi)}, nil
}
