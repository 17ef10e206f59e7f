package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
)

const (
	metricsNamespace = "rigsim"
	solverSubsystem  = "solver"
)

// Collector exports step statistics of runs, labelled by model. It is an
// observer and may be shared by concurrent runs.
type Collector struct {
	// StepsTotal counts accepted steps.
	StepsTotal *prometheus.CounterVec
	// RejectionsTotal counts rejected trial steps.
	RejectionsTotal *prometheus.CounterVec
	// StepSize is the distribution of accepted steps.
	StepSize *prometheus.HistogramVec
	// Width is the enclosure width after the last step.
	Width *prometheus.GaugeVec
	// Time is the upper end of the time enclosure after the last step.
	Time *prometheus.GaugeVec

	model string
}

// NewCollector registers the solver metrics with reg.
func NewCollector(reg prometheus.Registerer, model string) *Collector {
	f := promauto.With(reg)
	labels := []string{"model"}
	return &Collector{
		StepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "steps_total",
			Help:      "Accepted validated steps",
		}, labels),
		RejectionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "rejections_total",
			Help:      "Rejected trial steps",
		}, labels),
		StepSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "step_size",
			Help:      "Accepted step sizes",
			Buckets:   prometheus.ExponentialBuckets(1.0/(1<<20), 4, 12),
		}, labels),
		Width: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "enclosure_width",
			Help:      "Largest coordinate width of the current enclosure",
		}, labels),
		Time: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "time",
			Help:      "Current integration time",
		}, labels),
		model: model,
	}
}

func (c *Collector) OnStep(info dynamo.StepInfo, set *dynset.Doubleton) {
	c.StepsTotal.WithLabelValues(c.model).Inc()
	c.RejectionsTotal.WithLabelValues(c.model).Add(float64(info.Rejections))
	c.StepSize.WithLabelValues(c.model).Observe(info.Step)
	c.Width.WithLabelValues(c.model).Set(info.Width)
	c.Time.WithLabelValues(c.model).Set(set.Time.Hi())
}

var _ dynamo.Observer = (*Collector)(nil)
