package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/integrators"
	"github.com/san-kum/rigsim/internal/interval"
)

var ErrTooFewSamples = errors.New("analysis: too few samples")

// GrowthRate fits log(width) = a + rate*t by least squares over the
// samples with a finite positive width and returns rate. Times are taken
// at their midpoints.
func GrowthRate(times []interval.Interval, widths []float64) (float64, error) {
	var ts, ys []float64
	for i, w := range widths {
		if i >= len(times) || w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			continue
		}
		ts = append(ts, times[i].Mid())
		ys = append(ys, math.Log(w))
	}
	if len(ts) < 2 || ts[0] == ts[len(ts)-1] {
		return 0, ErrTooFewSamples
	}
	_, rate := stat.LinearRegression(ts, ys, nil, false)
	return rate, nil
}

// LyapunovExponent estimates the largest Lyapunov exponent of sys from x0
// by following a perturbed RK4 solution and renormalizing the separation
// back to perturbation after every step.
func LyapunovExponent(sys dynamo.System, x0 dynamo.State, t0, duration, dt, perturbation float64) float64 {
	if len(x0) == 0 || duration <= 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}
	rk := integrators.NewRK4()

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	steps := int(math.Ceil(duration / dt))
	h := duration / float64(steps)
	sumLog := 0.0
	t := t0
	for i := 0; i < steps; i++ {
		x = rk.Step(sys, x, t, h)
		xp = rk.Step(sys, xp, t, h)
		t += h
		if !x.IsValid() || !xp.IsValid() {
			return math.NaN()
		}

		sep := 0.0
		for j := range x {
			d := xp[j] - x[j]
			sep += d * d
		}
		sep = math.Sqrt(sep)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}
	return sumLog / duration
}
