package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)
	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestPointSystemMatchesClosedForm(t *testing.T) {
	g, err := autodiff.FromFunc(2, 2, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[1]
		out[1] = in[0].Neg()
	})
	if err != nil {
		t.Fatal(err)
	}
	x := NewRK4().Integrate(NewPointSystem(g), dynamo.State{1, 0}, 0, math.Pi, 1e-3)
	if math.Abs(x[0]+1) > 1e-9 || math.Abs(x[1]) > 1e-9 {
		t.Errorf("x(pi) = %v, want (-1, 0)", x)
	}
}

func TestPointSystemUndefined(t *testing.T) {
	g, err := autodiff.FromFunc(1, 1, 0, func(_ autodiff.Node, in, out, _ []autodiff.Node) {
		out[0] = in[0].Log()
	})
	if err != nil {
		t.Fatal(err)
	}
	if dx := NewPointSystem(g).Derive(dynamo.State{-1}, 0); !math.IsNaN(dx[0]) {
		t.Errorf("log(-1) = %v, want NaN", dx[0])
	}
}

func TestClearMantissaBits(t *testing.T) {
	tests := []struct {
		in, want float64
		bits     int
	}{
		{0.1, 838860.0 / (1 << 23), 20},
		{1, 1, 5},
		{0.75, 0.5, 1},
		{3, 2, 1},
	}
	for _, tt := range tests {
		if got := clearMantissaBits(tt.in, tt.bits); got != tt.want {
			t.Errorf("clearMantissaBits(%g, %d) = %v, want %v", tt.in, tt.bits, got, tt.want)
		}
	}
}
