package interval

import (
	"math"
	"strings"
)

// Vector is a box: a product of intervals.
type Vector []Interval

// NewVector returns a zero vector of dimension n.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// PointVector converts a float vector into degenerate intervals.
func PointVector(xs []float64) Vector {
	v := make(Vector, len(xs))
	for i, x := range xs {
		v[i] = Point(x)
	}
	return v
}

// BoxAround returns the box center ± radius in every coordinate.
func BoxAround(center []float64, radius float64) Vector {
	v := make(Vector, len(center))
	for i, c := range center {
		v[i] = Point(c).Add(Radius(radius))
	}
	return v
}

func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

func (v Vector) Add(w Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Add(w[i])
	}
	return r
}

func (v Vector) Sub(w Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Sub(w[i])
	}
	return r
}

// Mul multiplies every coordinate by s.
func (v Vector) Mul(s Interval) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Mul(s)
	}
	return r
}

// Inflate widens every coordinate by eps on both sides.
func (v Vector) Inflate(eps float64) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Inflate(eps)
	}
	return r
}

// Split returns the center point vector and remainder box.
func (v Vector) Split() (mid, rem Vector) {
	mid, rem = make(Vector, len(v)), make(Vector, len(v))
	for i := range v {
		mid[i], rem[i] = v[i].Split()
	}
	return mid, rem
}

// Mid returns the coordinate-wise midpoints.
func (v Vector) Mid() []float64 {
	r := make([]float64, len(v))
	for i := range v {
		r[i] = v[i].Mid()
	}
	return r
}

// Contains reports whether the point x lies in v.
func (v Vector) Contains(x []float64) bool {
	if len(x) != len(v) {
		return false
	}
	for i := range v {
		if !v[i].Contains(x[i]) {
			return false
		}
	}
	return true
}

// ContainsVector reports whether w is a subset of v.
func (v Vector) ContainsVector(w Vector) bool {
	for i := range v {
		if !v[i].ContainsInterval(w[i]) {
			return false
		}
	}
	return true
}

// SubsetInterior reports whether v lies in the interior of w.
func (v Vector) SubsetInterior(w Vector) bool {
	for i := range v {
		if !v[i].SubsetInterior(w[i]) {
			return false
		}
	}
	return true
}

// HullVector returns the coordinate-wise hull.
func HullVector(v, w Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = Hull(v[i], w[i])
	}
	return r
}

// IntersectVector returns v ∩ w and whether it is non-empty.
func IntersectVector(v, w Vector) (Vector, bool) {
	r := make(Vector, len(v))
	for i := range v {
		x, ok := Intersect(v[i], w[i])
		if !ok {
			return nil, false
		}
		r[i] = x
	}
	return r, true
}

// MaxWidth returns the largest coordinate width.
func (v Vector) MaxWidth() float64 {
	w := 0.0
	for _, x := range v {
		w = math.Max(w, x.Width())
	}
	return w
}

// Norm returns the max-norm upper bound max_i mag(v_i).
func (v Vector) Norm() float64 {
	n := 0.0
	for _, x := range v {
		n = math.Max(n, x.Mag())
	}
	return n
}

func (v Vector) IsFinite() bool {
	for _, x := range v {
		if !x.IsFinite() {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = x.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
