package integrators

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/rounding"
	"github.com/san-kum/rigsim/internal/taylor"
)

// Taylor is a validated Taylor integrator with Lohner-type wrapping
// control. A step either returns a set that provably contains the image of
// its input under the flow, or an error.
type Taylor struct {
	field *autodiff.Graph
	cfg   dynamo.Config
	log   *slog.Logger
	rc    *rounding.Context

	step  float64
	phase dynamo.Phase
	steps int
	err   error
}

// Option configures a Taylor solver.
type Option func(*Taylor)

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Taylor) {
		if l != nil {
			s.log = l
		}
	}
}

// NewTaylor returns a solver for x' = field(t, x).
func NewTaylor(field *autodiff.Graph, cfg dynamo.Config, opts ...Option) (*Taylor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := field.Validate(); err != nil {
		return nil, fmt.Errorf("integrators: vector field: %w", err)
	}
	if field.DimIn() != field.DimOut() {
		return nil, fmt.Errorf("%w: vector field maps R^%d to R^%d", dynamo.ErrDimensionMismatch, field.DimIn(), field.DimOut())
	}
	s := &Taylor{
		field: field,
		cfg:   cfg,
		log:   slog.Default(),
		rc:    rounding.NewContext(),
		step:  cfg.Step,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Taylor) Order() int            { return s.cfg.Order }
func (s *Taylor) Config() dynamo.Config { return s.cfg }
func (s *Taylor) Phase() dynamo.Phase   { return s.phase }

// Step returns the last accepted step, or the configured one before the
// first step.
func (s *Taylor) Step() float64 { return s.step }

// SetStep overrides the step used (fixed mode) or the reference the next
// prediction may grow from (adaptive mode).
func (s *Taylor) SetStep(h float64) { s.step = h }

// Reset clears a failure so the solver can be reused.
func (s *Taylor) Reset() {
	s.phase = dynamo.Unvalidated
	s.err = nil
	s.step = s.cfg.Step
	s.steps = 0
}

// Enclosure returns a box containing all solutions from box over [t, t+h].
func (s *Taylor) Enclosure(t interval.Interval, box interval.Vector, h float64) (interval.Vector, error) {
	return FirstOrderEnclosure(s.field, t, box, h, s.log)
}

// Move advances set by one validated step of at most maxStep (0 means no
// limit). The input set is left untouched. After an error the solver stays
// in the Failed phase until Reset.
func (s *Taylor) Move(set *dynset.Doubleton, maxStep float64) (*dynset.Doubleton, dynamo.StepInfo, error) {
	if s.phase == dynamo.Failed {
		return nil, dynamo.StepInfo{Phase: dynamo.Failed}, s.err
	}
	s.phase = dynamo.Unvalidated
	next, info, err := s.move(set, maxStep)
	if err != nil {
		s.phase = dynamo.Failed
		s.err = err
		info.Phase = dynamo.Failed
		s.log.Warn("step failed", "t", set.Time.String(), "err", err)
		return nil, info, err
	}
	s.phase = dynamo.Stepped
	s.steps++
	info.Phase = dynamo.Stepped
	return next, info, nil
}

func (s *Taylor) move(set *dynset.Doubleton, maxStep float64) (*dynset.Doubleton, dynamo.StepInfo, error) {
	t := set.Time
	info := dynamo.StepInfo{Index: s.steps, Time: t}
	fail := func(op string, h float64, state interval.Vector, err error) error {
		return &dynamo.SolverError{Op: op, Time: t, Step: h, State: state, Wrapped: err}
	}

	if n := set.Dim(); n != s.field.DimIn() {
		return nil, info, fail("move", 0, nil, fmt.Errorf("%w: set of dimension %d for field on R^%d", dynamo.ErrDimensionMismatch, n, s.field.DimIn()))
	}
	box := set.Hull()
	if !box.IsFinite() {
		return nil, info, fail("move", 0, box, dynamo.ErrInvalidState)
	}
	base := set.Base()
	p := s.cfg.Order

	center, err := taylor.PointCoefficients(s.field, t, base, p)
	if err != nil {
		return nil, info, fail("coefficients", 0, base, err)
	}
	tol := tolerance(s.rc, s.cfg, center)
	info.Tolerance = tol

	h, err := s.candidate(t, box, center, tol)
	if err != nil {
		return nil, info, fail("step", 0, box, err)
	}
	if maxStep > 0 && h >= maxStep {
		h = maxStep
	}

	var enc interval.Vector
	for {
		err = nil
		info.Step = h
		info.ErrorEstimate = errorEstimate(s.cfg, center, h)
		reject := s.cfg.Adaptive && info.ErrorEstimate > tol
		if !reject {
			enc, err = s.Enclosure(t, box, h)
			if err != nil && !errors.Is(err, dynamo.ErrEnclosureNotFound) {
				return nil, info, fail("enclosure", h, box, err)
			}
			reject = err != nil
		}
		if !reject {
			break
		}
		if !s.cfg.Adaptive {
			return nil, info, fail("enclosure", h, box, err)
		}
		info.Rejections++
		if info.Rejections > s.cfg.MaxRejections {
			return nil, info, fail("step", h, box, fmt.Errorf("%w: %d retries", dynamo.ErrTooManyRejections, info.Rejections-1))
		}
		est := info.ErrorEstimate
		if err != nil {
			est = 0
		}
		next := shrink(s.cfg, h, est, tol)
		s.log.Debug("step rejected", "t", t.String(), "h", h, "next", next, "estimate", info.ErrorEstimate, "tol", tol)
		if next < s.cfg.MinStep {
			return nil, info, fail("step", next, box, fmt.Errorf("%w: %g below %g", dynamo.ErrStepTooSmall, next, s.cfg.MinStep))
		}
		h = next
	}
	s.phase = dynamo.Validated

	rem, err := Remainder(s.field, t, enc, h, p)
	if err != nil {
		return nil, info, fail("remainder", h, enc, err)
	}
	info.Remainder = rem.MaxWidth()

	full, err := taylor.LinearCoefficients(s.field, t, box, p)
	if err != nil {
		return nil, info, fail("coefficients", h, box, err)
	}
	hi := interval.Point(h)
	jac := full.SumMatrix(hi)
	image := center.SumValues(hi)

	next, err := set.Move(t.Add(hi), base, image, rem, jac)
	if err != nil {
		return nil, info, fail("move", h, box, err)
	}
	if !next.Hull().IsFinite() {
		return nil, info, fail("move", h, box, dynamo.ErrInvalidState)
	}
	s.step = h
	info.Time = next.Time
	info.Width = next.Width()
	return next, info, nil
}

// candidate returns the first trial step of a move.
func (s *Taylor) candidate(t interval.Interval, box interval.Vector, center *taylor.Series, tol float64) (float64, error) {
	if !s.cfg.Adaptive {
		return s.step, nil
	}
	h := predictStep(s.cfg, center, tol)
	prev := s.step
	if s.steps == 0 && prev == 0 {
		df, err := s.field.Derivative(t, box)
		if err != nil {
			return 0, err
		}
		prev = initialStep(s.cfg, df)
		return math.Min(h, prev), nil
	}
	if prev > 0 {
		h = math.Min(h, clearMantissaBits(prev*s.cfg.MaxGrowth, stepMantissaBits))
	}
	return h, nil
}

var _ dynamo.Stepper = (*Taylor)(nil)
