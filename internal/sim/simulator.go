package sim

import (
	"context"
	"log/slog"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/rounding"
)

// TimeMap integrates sets with a stepper, stopping exactly at the
// requested end time.
type TimeMap struct {
	stepper   dynamo.Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *slog.Logger
}

func New(stepper dynamo.Stepper) *TimeMap {
	return &TimeMap{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       slog.Default(),
	}
}

func (m *TimeMap) AddMetric(mt dynamo.Metric)     { m.metrics = append(m.metrics, mt) }
func (m *TimeMap) AddObserver(o dynamo.Observer) { m.observers = append(m.observers, o) }

// SetLogger replaces the logger used for run summaries.
func (m *TimeMap) SetLogger(l *slog.Logger) {
	if l != nil {
		m.log = l
	}
}

// Run integrates set up to tEnd and records every accepted step. On error
// the result holds the steps taken so far and Final is the last valid set.
func (m *TimeMap) Run(ctx context.Context, set *dynset.Doubleton, tEnd float64) (*dynamo.Result, error) {
	if err := validateHorizon(set, tEnd); err != nil {
		return nil, err
	}
	result := &dynamo.Result{
		Records: []dynamo.Record{record(dynamo.StepInfo{}, set)},
		Final:   set,
		Metrics: make(map[string]float64),
	}
	for _, mt := range m.metrics {
		mt.Reset()
	}

	err := m.loop(ctx, set, tEnd, func(info dynamo.StepInfo, next *dynset.Doubleton) bool {
		result.Records = append(result.Records, record(info, next))
		result.StepsTaken++
		result.Rejections += info.Rejections
		result.Final = next
		return true
	})

	for _, mt := range m.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
	if err != nil {
		m.log.Warn("integration stopped", "t", result.Final.Time.String(), "steps", result.StepsTaken, "err", err)
		return result, err
	}
	m.log.Info("integration finished",
		"t", result.Final.Time.String(),
		"steps", result.StepsTaken,
		"rejections", result.Rejections,
		"width", result.Final.Width())
	return result, nil
}

// RunWithCallback integrates set up to tEnd, calling callback after every
// accepted step. Returning false from callback stops the run without error.
func (m *TimeMap) RunWithCallback(ctx context.Context, set *dynset.Doubleton, tEnd float64, callback func(dynamo.StepInfo, *dynset.Doubleton) bool) error {
	if err := validateHorizon(set, tEnd); err != nil {
		return err
	}
	return m.loop(ctx, set, tEnd, callback)
}

func (m *TimeMap) loop(ctx context.Context, set *dynset.Doubleton, tEnd float64, fn func(dynamo.StepInfo, *dynset.Doubleton) bool) error {
	for set.Time.Hi() < tEnd {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next, info, err := m.stepper.Move(set, rounding.Up.Sub(tEnd, set.Time.Hi()))
		if err != nil {
			return err
		}
		for _, mt := range m.metrics {
			mt.Observe(info, next)
		}
		for _, obs := range m.observers {
			obs.OnStep(info, next)
		}
		set = next
		if !fn(info, set) {
			return nil
		}
	}
	return nil
}
