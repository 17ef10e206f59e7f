package integrators

import (
	"testing"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int { return 2 }
func (b *benchDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func benchTaylor(b *testing.B, order int) {
	g, err := autodiff.FromFunc(2, 2, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Neg()
	})
	if err != nil {
		b.Fatal(err)
	}
	cfg := dynamo.DefaultConfig()
	cfg.Order = order
	cfg.Adaptive = false
	cfg.Step = 0.01
	s, err := NewTaylor(g, cfg)
	if err != nil {
		b.Fatal(err)
	}
	set := dynset.New(interval.Point(0), interval.BoxAround([]float64{1, 0}, 1e-6))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next, _, err := s.Move(set, 0)
		if err != nil {
			b.Fatal(err)
		}
		set = next
	}
}

func BenchmarkTaylor10(b *testing.B) { benchTaylor(b, 10) }
func BenchmarkTaylor20(b *testing.B) { benchTaylor(b, 20) }

type benchNBody struct{}

func (b *benchNBody) StateDim() int { return 20 }
func (b *benchNBody) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, 20)
	for i := 0; i < 5; i++ {
		dx[i*4] = x[i*4+2]
		dx[i*4+1] = x[i*4+3]
		dx[i*4+2] = -x[i*4] * 0.1
		dx[i*4+3] = -x[i*4+1] * 0.1
	}
	return dx
}

func BenchmarkRK4_NBody5(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchNBody{}
	x := make(dynamo.State, 20)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.001)
	}
}
