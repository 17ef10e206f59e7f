package metrics

import (
	"math"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
)

// StepStats tracks step sizes and rejections.
type StepStats struct {
	name       string
	sum        float64
	min, max   float64
	rejections int
	samples    int
}

func NewStepStats() *StepStats {
	return &StepStats{name: "mean_step", min: math.Inf(1)}
}

func (s *StepStats) Name() string { return s.name }

func (s *StepStats) Observe(info dynamo.StepInfo, _ *dynset.Doubleton) {
	s.sum += info.Step
	s.min = math.Min(s.min, info.Step)
	s.max = math.Max(s.max, info.Step)
	s.rejections += info.Rejections
	s.samples++
}

// Value returns the mean accepted step.
func (s *StepStats) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *StepStats) Min() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.min
}

func (s *StepStats) Max() float64    { return s.max }
func (s *StepStats) Rejections() int { return s.rejections }
func (s *StepStats) Steps() int      { return s.samples }

func (s *StepStats) Reset() {
	*s = StepStats{name: s.name, min: math.Inf(1)}
}
