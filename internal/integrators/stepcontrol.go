package integrators

import (
	"math"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/rounding"
	"github.com/san-kum/rigsim/internal/taylor"
)

// stepMantissaBits is the number of significant bits kept in a step, so
// that sums of steps stay exact for a long time.
const stepMantissaBits = 20

// clearMantissaBits truncates the mantissa of x > 0 to bits significant bits.
func clearMantissaBits(x float64, bits int) float64 {
	if x <= 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	frac, exp := math.Frexp(x)
	scale := math.Ldexp(1, bits)
	frac = math.Floor(frac*scale) / scale
	return math.Ldexp(frac, exp)
}

// tolerance returns max(AbsTol, RelTol·‖x_0‖) rounded up.
func tolerance(rc *rounding.Context, cfg dynamo.Config, s *taylor.Series) float64 {
	var rel float64
	rc.Do(rounding.Up, func() {
		rel = rc.Mul(cfg.RelTol, s.Norm(0))
	})
	return math.Max(cfg.AbsTol, rel)
}

// predictStep returns Safety·min_i (tol/‖x_i‖)^{1/i} over the last
// LastTerms coefficients, clamped to [MinStep, MaxStep] and truncated.
func predictStep(cfg dynamo.Config, s *taylor.Series, tol float64) float64 {
	p := s.Order()
	opt := 1.5 * cfg.MaxStep
	for i := p; i > p-cfg.LastTerms && i >= 1; i-- {
		c := s.Norm(i)
		if c == 0 || math.IsInf(c, 0) {
			continue
		}
		step := math.Exp(math.Log(tol/c) / float64(i))
		opt = math.Min(opt, finiteOr(step, cfg.MinStep))
	}
	opt *= cfg.Safety
	opt = math.Max(math.Min(opt, cfg.MaxStep), cfg.MinStep)
	return clearMantissaBits(opt, stepMantissaBits)
}

// errorEstimate returns max_i ‖x_i‖·h^i over the last LastTerms coefficients.
func errorEstimate(cfg dynamo.Config, s *taylor.Series, h float64) float64 {
	p := s.Order()
	est := 0.0
	for i := p; i > p-cfg.LastTerms && i >= 1; i-- {
		est = math.Max(est, s.Norm(i)*math.Pow(h, float64(i)))
	}
	return est
}

// initialStep returns min(1, 1/‖Df(box)‖) clamped to MaxStep, the step at
// which the linear part of the flow stays contracting enough for the first
// enclosure attempt.
func initialStep(cfg dynamo.Config, df interval.Matrix) float64 {
	h := 1.0
	if l := df.Norm(); l > 1 && !math.IsInf(l, 0) {
		h = 1 / l
	}
	h = math.Min(h, cfg.MaxStep)
	return clearMantissaBits(math.Max(h, cfg.MinStep), stepMantissaBits)
}

// shrink returns the next trial step after a rejection. est is zero when
// the rejection came from a failed enclosure.
func shrink(cfg dynamo.Config, h, est, tol float64) float64 {
	f := cfg.MinShrink
	if est > tol && tol > 0 {
		f = math.Max(f, math.Min(cfg.Safety*math.Pow(tol/est, 1/float64(cfg.Order)), 0.95))
	}
	return clearMantissaBits(h*f, stepMantissaBits)
}
