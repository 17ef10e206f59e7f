// Package dynset represents sets of states propagated by the rigorous
// solver.
//
// A [Doubleton] is the set X + C·R0 + B·R: X is a small center box, C·R0 the
// image of the initial box under the linearized flow and B·R the
// accumulated remainder in a basis B. Keeping C·R0 separate from B·R and
// rebuilding B by QR after every step controls the wrapping effect that a
// plain interval box suffers under rotation.
package dynset

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
)

// ErrDimension indicates operands of inconsistent dimension.
var ErrDimension = errors.New("dynset: dimension mismatch")

// Doubleton is the set X + C·R0 + B·R at time Time.
type Doubleton struct {
	Time interval.Interval
	X    interval.Vector
	C    interval.Matrix
	R0   interval.Vector
	B    interval.Matrix
	R    interval.Vector

	// bound is an enclosure of the set at least as tight as the hull of the
	// representation, kept from the previous move.
	bound  interval.Vector
	policy Policy
}

// New returns the doubleton of a box at time t: X is the box center, C the
// identity and R0 the zero-centred remainder of the box.
func New(t interval.Interval, box interval.Vector) *Doubleton {
	n := len(box)
	x, r0 := box.Split()
	return &Doubleton{
		Time:  t,
		X:     x,
		C:     interval.Identity(n),
		R0:    r0,
		B:     interval.Identity(n),
		R:     interval.NewVector(n),
		bound: box.Clone(),
	}
}

// WithPolicy returns d using the given basis policy for subsequent moves.
func (d *Doubleton) WithPolicy(p Policy) *Doubleton {
	c := d.Clone()
	c.policy = p
	return c
}

func (d *Doubleton) Policy() Policy { return d.policy }

func (d *Doubleton) Dim() int { return len(d.X) }

// Clone returns a deep copy.
func (d *Doubleton) Clone() *Doubleton {
	return &Doubleton{
		Time:   d.Time,
		X:      d.X.Clone(),
		C:      d.C.Clone(),
		R0:     d.R0.Clone(),
		B:      d.B.Clone(),
		R:      d.R.Clone(),
		bound:  d.bound.Clone(),
		policy: d.policy,
	}
}

// Hull returns an interval box enclosing the set.
func (d *Doubleton) Hull() interval.Vector {
	h := d.X.Add(d.C.MulVec(d.R0)).Add(d.B.MulVec(d.R))
	if d.bound == nil {
		return h
	}
	if r, ok := interval.IntersectVector(h, d.bound); ok {
		return r
	}
	return h
}

// Base returns the point about which the next Taylor map is expanded.
func (d *Doubleton) Base() interval.Vector {
	m, _ := d.X.Split()
	return m
}

// Contains reports whether the point x lies in the hull of d.
func (d *Doubleton) Contains(x []float64) bool {
	return d.Hull().Contains(x)
}

// Width returns the largest coordinate width of the hull.
func (d *Doubleton) Width() float64 {
	return d.Hull().MaxWidth()
}

// Move maps d through a Taylor step. base is the expansion point returned
// by Base, image encloses the Taylor polynomial at base, jac encloses the
// derivative of the Taylor polynomial over the hull of d and rem the
// Lagrange remainder. The result is a new set at time t; d is unchanged.
func (d *Doubleton) Move(t interval.Interval, base, image, rem interval.Vector, jac interval.Matrix) (*Doubleton, error) {
	n := d.Dim()
	if len(base) != n || len(image) != n || len(rem) != n {
		return nil, fmt.Errorf("%w: set %d, base %d, image %d, remainder %d", ErrDimension, n, len(base), len(image), len(rem))
	}
	if r, c := jac.Dims(); r != n || c != n {
		return nil, fmt.Errorf("%w: jacobian %dx%d for set of dimension %d", ErrDimension, r, c, n)
	}

	deltaX := d.Hull().Sub(base)
	deltaY := d.X.Sub(base)

	mx := image.Add(rem)
	bound := mx.Add(jac.MulVec(deltaX))
	mx = mx.Add(jac.MulVec(deltaY))

	c := jac.Mul(d.C)
	jb := jac.Mul(d.B)
	if full, ok := interval.IntersectVector(bound, mx.Add(c.MulVec(d.R0)).Add(jb.MulVec(d.R))); ok {
		bound = full
	}

	cMid, deltaC := c.Split()
	xMid, xRem := mx.Split()
	xRem = xRem.Add(deltaC.MulVec(d.R0))

	b, binv := basis(jb, d.policy)
	r := binv.Mul(jb).MulVec(d.R).Add(binv.MulVec(xRem))

	return &Doubleton{
		Time:   t,
		X:      xMid,
		C:      cMid,
		R0:     d.R0.Clone(),
		B:      b,
		R:      r,
		bound:  bound,
		policy: d.policy,
	}, nil
}
