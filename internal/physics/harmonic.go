package physics

import "github.com/san-kum/rigsim/internal/autodiff"

const (
	DefaultMass      = 1.0
	DefaultStiffness = 1.0
)

// Harmonic is a damped linear oscillator m x'' + c x' + k x = 0.
// State: [x, v].
type Harmonic struct {
	Mass, Stiffness, Damping float64
}

func NewHarmonic() *Harmonic {
	return &Harmonic{Mass: DefaultMass, Stiffness: DefaultStiffness}
}

func (h *Harmonic) Name() string            { return "harmonic" }
func (h *Harmonic) StateDim() int           { return 2 }
func (h *Harmonic) DefaultState() []float64 { return []float64{1, 0} }

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"mass": h.Mass, "stiffness": h.Stiffness, "damping": h.Damping}
}

func (h *Harmonic) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		h.Mass = value
	case "stiffness":
		h.Stiffness = value
	case "damping":
		h.Damping = value
	default:
		return unknown(h.Name(), name)
	}
	return nil
}

var harmonicParams = []string{"mass", "stiffness", "damping"}

func (h *Harmonic) Field() (*autodiff.Graph, error) {
	return build(2, 2, harmonicParams, h.GetParams(), func(_ autodiff.Node, x, out []autodiff.Node, p vars) {
		force := p["stiffness"].Mul(x[0]).Add(p["damping"].Mul(x[1]))
		out[0] = x[1]
		out[1] = force.Neg().Div(p["mass"])
	})
}

// EnergyField returns m v²/2 + k x²/2.
func (h *Harmonic) EnergyField() (*autodiff.Graph, error) {
	return build(2, 1, harmonicParams, h.GetParams(), func(_ autodiff.Node, x, out []autodiff.Node, p vars) {
		out[0] = p["mass"].Mul(x[1].Sqr()).Add(p["stiffness"].Mul(x[0].Sqr())).MulConst(0.5)
	})
}
