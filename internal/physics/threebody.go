package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// ThreeBody implements a planar gravitational three-body problem with
// softened distances.
// State: [x1, y1, vx1, vy1, x2, y2, vx2, vy2, x3, y3, vx3, vy3]
type ThreeBody struct {
	m1, m2, m3 float64 // Masses
	g          float64 // Gravitational constant
	softening  float64 // Prevent singularities
}

func NewThreeBody() *ThreeBody {
	return &ThreeBody{
		m1:        1.0,
		m2:        1.0,
		m3:        1.0,
		g:         1.0,
		softening: 0.1,
	}
}

func (t *ThreeBody) Name() string  { return "threebody" }
func (t *ThreeBody) StateDim() int { return 12 }

func (t *ThreeBody) DefaultState() []float64 {
	// Figure-8 solution initial conditions (approximately)
	return []float64{
		-1.0, 0.0, 0.347, 0.532, // Body 1
		1.0, 0.0, 0.347, 0.532, // Body 2
		0.0, 0.0, -0.694, -1.064, // Body 3
	}
}

// Field uses the softened inverse cube (|r|² + ε²)^{-3/2}.
func (t *ThreeBody) Field() (*autodiff.Graph, error) {
	return build(12, 12, []string{"m1", "m2", "m3", "g", "softening"}, t.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		eps2 := p["softening"].Sqr()
		mass := []autodiff.Node{p["m1"], p["m2"], p["m3"]}
		cube := eps2.Graph().Const(-1.5)
		for i := 0; i < 3; i++ {
			xi, yi := s[4*i], s[4*i+1]
			out[4*i] = s[4*i+2]
			out[4*i+1] = s[4*i+3]
			ax, ay := cube.Graph().Const(0), cube.Graph().Const(0)
			for j := 0; j < 3; j++ {
				if j == i {
					continue
				}
				dx, dy := s[4*j].Sub(xi), s[4*j+1].Sub(yi)
				inv := dx.Sqr().Add(dy.Sqr()).Add(eps2).Pow(cube)
				k := p["g"].Mul(mass[j]).Mul(inv)
				ax, ay = ax.Add(k.Mul(dx)), ay.Add(k.Mul(dy))
			}
			out[4*i+2], out[4*i+3] = ax, ay
		}
	})
}

func (t *ThreeBody) GetParams() map[string]float64 {
	return map[string]float64{
		"m1":        t.m1,
		"m2":        t.m2,
		"m3":        t.m3,
		"g":         t.g,
		"softening": t.softening,
	}
}

func (t *ThreeBody) SetParam(name string, value float64) error {
	switch name {
	case "m1":
		t.m1 = value
	case "m2":
		t.m2 = value
	case "m3":
		t.m3 = value
	case "g":
		t.g = value
	case "softening":
		t.softening = value
	default:
		return unknown(t.Name(), name)
	}
	return nil
}
