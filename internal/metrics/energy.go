package metrics

import (
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
)

// Energy encloses an energy function over every set of a run. For a
// conservative system each enclosure must meet the initial energy; Value
// reports the widest enclosure seen.
type Energy struct {
	name     string
	field    *autodiff.Graph
	initial  interval.Interval
	maxWidth float64
	lost     int
	samples  int
}

// NewEnergy evaluates field, a graph from R^n to R, over the initial box.
func NewEnergy(field *autodiff.Graph, t0 interval.Interval, box interval.Vector) (*Energy, error) {
	e0, err := field.Eval(t0, box)
	if err != nil {
		return nil, err
	}
	return &Energy{name: "energy_width", field: field, initial: e0[0], maxWidth: e0[0].Width()}, nil
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(_ dynamo.StepInfo, set *dynset.Doubleton) {
	v, err := e.field.Eval(set.Time, set.Hull())
	e.samples++
	if err != nil {
		e.maxWidth = math.Inf(1)
		e.lost++
		return
	}
	e.maxWidth = math.Max(e.maxWidth, v[0].Width())
	if _, ok := interval.Intersect(v[0], e.initial); !ok {
		e.lost++
	}
}

func (e *Energy) Value() float64 { return e.maxWidth }

// Initial returns the energy enclosure of the initial box.
func (e *Energy) Initial() interval.Interval { return e.initial }

// Violations counts the enclosures disjoint from the initial energy.
func (e *Energy) Violations() int { return e.lost }

func (e *Energy) Reset() {
	e.maxWidth = e.initial.Width()
	e.lost = 0
	e.samples = 0
}
