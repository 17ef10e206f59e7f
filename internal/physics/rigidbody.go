package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// RigidBody integrates the torque-free Euler equations of a spinning body
// in its principal frame.
// State: [w1, w2, w3]
type RigidBody struct {
	I1, I2, I3 float64
}

func NewRigidBody() *RigidBody {
	return &RigidBody{1.0, 2.0, 3.0}
}

func (r *RigidBody) Name() string  { return "rigidbody" }
func (r *RigidBody) StateDim() int { return 3 }

// DefaultState spins mostly about the unstable middle axis.
func (r *RigidBody) DefaultState() []float64 { return []float64{0.1, 1.0, 0.1} }

var rigidBodyParams = []string{"I1", "I2", "I3"}

func (r *RigidBody) Field() (*autodiff.Graph, error) {
	return build(3, 3, rigidBodyParams, r.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		w1, w2, w3 := s[0], s[1], s[2]
		i1, i2, i3 := p["I1"], p["I2"], p["I3"]
		out[0] = i2.Sub(i3).Div(i1).Mul(w2).Mul(w3)
		out[1] = i3.Sub(i1).Div(i2).Mul(w3).Mul(w1)
		out[2] = i1.Sub(i2).Div(i3).Mul(w1).Mul(w2)
	})
}

// EnergyField returns the rotational energy (I1 w1² + I2 w2² + I3 w3²)/2.
func (r *RigidBody) EnergyField() (*autodiff.Graph, error) {
	return build(3, 1, rigidBodyParams, r.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		sum := p["I1"].Mul(s[0].Sqr()).Add(p["I2"].Mul(s[1].Sqr())).Add(p["I3"].Mul(s[2].Sqr()))
		out[0] = sum.MulConst(0.5)
	})
}

func (r *RigidBody) GetParams() map[string]float64 {
	return map[string]float64{"I1": r.I1, "I2": r.I2, "I3": r.I3}
}

func (r *RigidBody) SetParam(n string, v float64) error {
	switch n {
	case "I1":
		r.I1 = v
	case "I2":
		r.I2 = v
	case "I3":
		r.I3 = v
	default:
		return unknown(r.Name(), n)
	}
	return nil
}
