package metrics

import (
	"math"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
)

// Stability is the fraction of steps whose enclosure stays narrower than
// threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(info dynamo.StepInfo, _ *dynset.Doubleton) {
	s.samples++
	if info.Width > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxWidth is the largest enclosure width of a run.
type MaxWidth struct{ max float64 }

func NewMaxWidth() *MaxWidth { return &MaxWidth{} }

func (m *MaxWidth) Name() string { return "max_width" }

func (m *MaxWidth) Observe(info dynamo.StepInfo, _ *dynset.Doubleton) {
	m.max = math.Max(m.max, info.Width)
}

func (m *MaxWidth) Value() float64 { return m.max }
func (m *MaxWidth) Reset()         { m.max = 0 }
