package integrators

import (
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/interval"
)

// RK4 is the classical non-rigorous Runge-Kutta scheme, used as a point
// reference for the validated solver.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) stage(dst, x, k dynamo.State, f float64) {
	for i := range x {
		dst[i] = x[i] + f*k[i]
	}
}

// Step advances x from t by dt.
func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)
	half := dt * 0.5

	copy(r.k1, sys.Derive(x, t))
	r.stage(r.scratch, x, r.k1, half)
	copy(r.k2, sys.Derive(r.scratch, t+half))
	r.stage(r.scratch, x, r.k2, half)
	copy(r.k3, sys.Derive(r.scratch, t+half))
	r.stage(r.scratch, x, r.k3, dt)
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	out := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out
}

// Integrate takes steps of at most dt from t0 to t1 and returns the final
// state. It stops early once the state leaves the finite range.
func (r *RK4) Integrate(sys dynamo.System, x dynamo.State, t0, t1, dt float64) dynamo.State {
	steps := int(math.Ceil((t1 - t0) / dt))
	if steps < 1 {
		return x.Clone()
	}
	h := (t1 - t0) / float64(steps)
	for i := 0; i < steps && x.IsValid(); i++ {
		x = r.Step(sys, x, t0+float64(i)*h, h)
	}
	return x
}

// PointSystem evaluates a vector field graph at points, taking the
// midpoint of each enclosed value. Undefined evaluations yield NaN.
type PointSystem struct {
	g *autodiff.Graph
}

func NewPointSystem(g *autodiff.Graph) *PointSystem {
	return &PointSystem{g: g}
}

func (p *PointSystem) StateDim() int { return p.g.DimIn() }

func (p *PointSystem) Derive(x dynamo.State, t float64) dynamo.State {
	out := make(dynamo.State, p.g.DimOut())
	v, err := p.g.Eval(interval.Point(t), interval.PointVector(x))
	if err != nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out, v.Mid())
	return out
}
