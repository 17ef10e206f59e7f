package integrators

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/taylor"
)

const (
	// inflation applied to coordinates that failed the inclusion test.
	enclosureMultf = 1.5
	// base number of Picard iterations; 2n more are allowed in dimension n.
	enclosureAttempts = 10
)

// trialTime is the time interval, in units of h, of the first guess.
var trialTime = interval.Must(-0.2, 1.2)

// FirstOrderEnclosure finds a box containing every solution starting in x
// over the time interval [t, t+h], by the Picard inclusion
// x + [0,h]·f([t,t+h], Z) ⊂ int Z.
func FirstOrderEnclosure(field *autodiff.Graph, t interval.Interval, x interval.Vector, h float64, log *slog.Logger) (interval.Vector, error) {
	n := len(x)
	span := interval.Must(0, h)
	tspan := t.Add(span)

	fx, err := field.Eval(t, x)
	if err != nil {
		return nil, err
	}
	z := x.Add(fx.Mul(trialTime.Scale(h)))
	for i := range z {
		eps := 1e-14 * (1 + z[i].Mag())
		z[i] = z[i].Inflate(eps)
	}

	limit := enclosureAttempts + 2*n
	for attempt := 0; attempt < limit; attempt++ {
		fz, err := field.Eval(tspan, z)
		if err != nil {
			return nil, err
		}
		y := x.Add(fz.Mul(span))
		if !y.IsFinite() {
			break
		}
		found := true
		for i := range y {
			if y[i].SubsetInterior(z[i]) {
				continue
			}
			found = false
			grown := y[i].Expand(enclosureMultf)
			z[i] = interval.Hull(z[i], grown).Inflate(1e-14 * (1 + grown.Mag()))
		}
		if found {
			return y, nil
		}
		log.Debug("enclosure inflated", "attempt", attempt, "h", h, "width", z.MaxWidth())
	}
	return nil, fmt.Errorf("%w: no inclusion after %d attempts (h=%g)", dynamo.ErrEnclosureNotFound, limit, h)
}

// Remainder returns the Lagrange remainder x_{p+1}([t,t+h], enc)·h^{p+1}
// of a Taylor step of order p, given an enclosure enc of the solutions
// over the step.
func Remainder(field *autodiff.Graph, t interval.Interval, enc interval.Vector, h float64, order int) (interval.Vector, error) {
	s, err := taylor.PointCoefficients(field, t.Add(interval.Must(0, h)), enc, order+1)
	if err != nil {
		return nil, err
	}
	hp, err := interval.Point(h).Pow(order + 1)
	if err != nil {
		return nil, err
	}
	return s.Values(order + 1).Mul(hp), nil
}

func finiteOr(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}
