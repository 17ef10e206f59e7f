package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// Decay is x' = -k x.
type Decay struct{ Rate float64 }

func NewDecay() *Decay                  { return &Decay{Rate: 1} }
func (d *Decay) Name() string            { return "decay" }
func (d *Decay) StateDim() int           { return 1 }
func (d *Decay) DefaultState() []float64 { return []float64{1} }

func (d *Decay) Field() (*autodiff.Graph, error) {
	return build(1, 1, []string{"rate"}, d.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		out[0] = p["rate"].Mul(s[0]).Neg()
	})
}

func (d *Decay) GetParams() map[string]float64 { return map[string]float64{"rate": d.Rate} }

func (d *Decay) SetParam(n string, v float64) error {
	if n != "rate" {
		return unknown(d.Name(), n)
	}
	d.Rate = v
	return nil
}
