package dynamo

import (
	"math"

	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
)

// Phase is the state of the current step.
type Phase int

const (
	Unvalidated Phase = iota
	Validated
	Stepped
	Failed
)

func (p Phase) String() string {
	switch p {
	case Unvalidated:
		return "unvalidated"
	case Validated:
		return "validated"
	case Stepped:
		return "stepped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// StepInfo describes one accepted step.
type StepInfo struct {
	Index      int
	Time       interval.Interval
	Step       float64
	Rejections int
	// ErrorEstimate is the magnitude of the highest Taylor term at the step.
	ErrorEstimate float64
	Tolerance     float64
	// Remainder is the largest width of the Lagrange remainder.
	Remainder float64
	Width     float64
	Phase     Phase
}

// Stepper advances a set by one rigorous step of at most maxStep (0 means
// unlimited). The input set is not modified.
type Stepper interface {
	Order() int
	Step() float64
	SetStep(h float64)
	Phase() Phase
	Move(set *dynset.Doubleton, maxStep float64) (*dynset.Doubleton, StepInfo, error)
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(info StepInfo, set *dynset.Doubleton)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(info StepInfo, set *dynset.Doubleton)

func (f ObserverFunc) OnStep(info StepInfo, set *dynset.Doubleton) { f(info, set) }

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(info StepInfo, set *dynset.Doubleton)
	Value() float64
	Reset()
}

// State is a point in state space, used by the non-rigorous baseline.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is a vector field evaluated at points.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Record is one stored step of a run.
type Record struct {
	Time  interval.Interval
	Step  float64
	Box   interval.Vector
	Width float64
}

// Result summarizes an integration.
type Result struct {
	Records    []Record
	Final      *dynset.Doubleton
	StepsTaken int
	Rejections int
	Metrics    map[string]float64
}

// FinalBox returns the hull of the final set.
func (r *Result) FinalBox() interval.Vector {
	if r.Final == nil {
		return nil
	}
	return r.Final.Hull()
}
