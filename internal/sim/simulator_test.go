package sim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/integrators"
	"github.com/san-kum/rigsim/internal/interval"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// shiftStepper advances time by a fixed step without moving the set.
type shiftStepper struct {
	h     float64
	calls int
	failAt int
}

func (s *shiftStepper) Order() int          { return 1 }
func (s *shiftStepper) Step() float64       { return s.h }
func (s *shiftStepper) SetStep(h float64)   { s.h = h }
func (s *shiftStepper) Phase() dynamo.Phase { return dynamo.Stepped }

func (s *shiftStepper) Move(set *dynset.Doubleton, maxStep float64) (*dynset.Doubleton, dynamo.StepInfo, error) {
	s.calls++
	if s.failAt > 0 && s.calls == s.failAt {
		return nil, dynamo.StepInfo{Phase: dynamo.Failed}, &dynamo.SolverError{Op: "enclosure", Time: set.Time, Wrapped: dynamo.ErrEnclosureNotFound}
	}
	h := math.Min(s.h, maxStep)
	next := set.Clone()
	next.Time = set.Time.Add(interval.Point(h))
	return next, dynamo.StepInfo{Index: s.calls - 1, Time: next.Time, Step: h, Phase: dynamo.Stepped}, nil
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                                { return "count" }
func (c *countMetric) Observe(dynamo.StepInfo, *dynset.Doubleton) { c.n++ }
func (c *countMetric) Value() float64                              { return float64(c.n) }
func (c *countMetric) Reset()                                      { c.n = 0 }

func unitSet() *dynset.Doubleton {
	return dynset.New(interval.Point(0), interval.BoxAround([]float64{1, 0}, 1e-3))
}

func TestTimeMapRun(t *testing.T) {
	tm := New(&shiftStepper{h: 0.125})
	tm.SetLogger(quiet)
	metric := &countMetric{}
	tm.AddMetric(metric)
	var seen int
	tm.AddObserver(dynamo.ObserverFunc(func(dynamo.StepInfo, *dynset.Doubleton) { seen++ }))

	result, err := tm.Run(context.Background(), unitSet(), 1)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 8 {
		t.Errorf("expected 8 steps, got %d", result.StepsTaken)
	}
	if len(result.Records) != 9 {
		t.Errorf("expected 9 records, got %d", len(result.Records))
	}
	if result.Final.Time != interval.Point(1) {
		t.Errorf("final time %s, want [1, 1]", result.Final.Time)
	}
	if result.Metrics["count"] != 8 || seen != 8 {
		t.Errorf("metric saw %v steps, observer %d", result.Metrics["count"], seen)
	}
}

func TestTimeMapStopsOnFinalStep(t *testing.T) {
	tm := New(&shiftStepper{h: 0.4})
	tm.SetLogger(quiet)
	result, err := tm.Run(context.Background(), unitSet(), 1)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	last := result.Records[len(result.Records)-1]
	if !last.Time.Contains(1) {
		t.Errorf("last record at %s does not reach 1", last.Time)
	}
	if math.Abs(last.Step-0.2) > 1e-15 {
		t.Errorf("last step %g, want 0.2", last.Step)
	}
}

func TestTimeMapInvalidHorizon(t *testing.T) {
	tm := New(&shiftStepper{h: 0.1})
	tests := []struct {
		name string
		end  float64
	}{
		{"nan", math.NaN()},
		{"infinite", math.Inf(1)},
		{"before start", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.Run(context.Background(), unitSet(), tt.end); !errors.Is(err, ErrHorizon) {
				t.Errorf("error = %v, want ErrHorizon", err)
			}
		})
	}
}

func TestTimeMapKeepsPartialResult(t *testing.T) {
	tm := New(&shiftStepper{h: 0.125, failAt: 3})
	tm.SetLogger(quiet)
	result, err := tm.Run(context.Background(), unitSet(), 1)
	if !errors.Is(err, dynamo.ErrEnclosureNotFound) {
		t.Fatalf("error = %v, want ErrEnclosureNotFound", err)
	}
	if result.StepsTaken != 2 {
		t.Errorf("expected 2 steps before failure, got %d", result.StepsTaken)
	}
	if result.Final.Time != interval.Point(0.25) {
		t.Errorf("final time %s, want 0.25", result.Final.Time)
	}
}

func TestTimeMapCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tm := New(&shiftStepper{h: 0.125})
	tm.SetLogger(quiet)
	steps := 0
	tm.AddObserver(dynamo.ObserverFunc(func(dynamo.StepInfo, *dynset.Doubleton) {
		steps++
		if steps == 2 {
			cancel()
		}
	}))
	result, err := tm.Run(ctx, unitSet(), 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result.StepsTaken != 2 {
		t.Errorf("expected 2 steps, got %d", result.StepsTaken)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	tm := New(&shiftStepper{h: 0.125})
	calls := 0
	err := tm.RunWithCallback(context.Background(), unitSet(), 1, func(dynamo.StepInfo, *dynset.Doubleton) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callbacks, got %d", calls)
	}
}

func harmonic(t *testing.T) *autodiff.Graph {
	t.Helper()
	g, err := autodiff.FromFunc(2, 2, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Neg()
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func solverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Order = 12
	cfg.AbsTol = 1e-12
	cfg.RelTol = 0
	return cfg
}

func TestTimeMapWithTaylor(t *testing.T) {
	s, err := integrators.NewTaylor(harmonic(t), solverConfig(), integrators.WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}
	tm := New(s)
	tm.SetLogger(quiet)
	result, err := tm.Run(context.Background(), unitSet(), math.Pi/2)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// x(pi/2) = (v0, -x0) for the rotation.
	box := result.FinalBox()
	for _, p := range [][]float64{{0, -1}, {1e-3, -1}, {0, -1 + 1e-3}, {-1e-3, -1 - 1e-3}} {
		if !box.Inflate(1e-12).Contains(p) {
			t.Errorf("final box %s misses %v", box, p)
		}
	}
	if box.MaxWidth() > 2.5e-3 {
		t.Errorf("final width %g too large", box.MaxWidth())
	}
}

func TestCover(t *testing.T) {
	box := interval.BoxAround([]float64{1, 0}, 1e-2)
	cfg := CoverConfig{Solver: solverConfig(), End: 1, Policy: dynset.QR, Workers: 2, Logger: quiet}
	result, err := Cover(context.Background(), harmonic(t), box, 2, cfg)
	if err != nil {
		t.Fatalf("cover failed: %v", err)
	}
	if len(result.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(result.Parts))
	}
	c, s := math.Cos(1), math.Sin(1)
	for _, p := range [][]float64{{1, 0}, {1.01, 0.01}, {0.99, -0.01}, {1.005, -0.002}} {
		img := []float64{c*p[0] + s*p[1], -s*p[0] + c*p[1]}
		if !result.Hull.Inflate(1e-12).Contains(img) {
			t.Errorf("hull %s misses image %v of %v", result.Hull, img, p)
		}
	}
	if result.Steps() < len(result.Parts) {
		t.Errorf("only %d steps over %d parts", result.Steps(), len(result.Parts))
	}
}

func TestCoverPropagatesFailure(t *testing.T) {
	g, err := autodiff.FromFunc(1, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[0].Sqr()
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg := CoverConfig{Solver: solverConfig(), End: 2, Logger: quiet}
	cfg.Solver.MaxRejections = 3
	_, err = Cover(context.Background(), g, interval.Vector{interval.Must(1, 1.5)}, 3, cfg)
	if err == nil {
		t.Fatal("expected blow-up to fail")
	}
	var serr *dynamo.SolverError
	if !errors.As(err, &serr) {
		t.Errorf("error %v is not a SolverError", err)
	}
}

func TestCoverRejectsBadInput(t *testing.T) {
	cfg := CoverConfig{Solver: solverConfig(), End: 1, Logger: quiet}
	if _, err := Cover(context.Background(), harmonic(t), interval.BoxAround([]float64{1, 0}, 1e-3), 0, cfg); err == nil {
		t.Error("zero parts accepted")
	}
	cfg.Solver.Order = 0
	if _, err := Cover(context.Background(), harmonic(t), interval.BoxAround([]float64{1, 0}, 1e-3), 1, cfg); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
