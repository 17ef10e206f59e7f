package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
)

var ErrHorizon = errors.New("sim: invalid time horizon")

// CoverConfig controls a parallel integration of a split box.
type CoverConfig struct {
	Solver dynamo.Config
	Start  float64
	End    float64
	Policy dynset.Policy
	// Workers bounds the number of parts integrated at once; zero means
	// GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
	// Observers are shared by all parts and must be safe for concurrent
	// use.
	Observers []dynamo.Observer
}

// CoverResult holds the result of every part, in grid order, and the hull
// of their final sets.
type CoverResult struct {
	Parts []*dynamo.Result
	Hull  interval.Vector
}

// Steps returns the number of accepted steps over all parts.
func (r *CoverResult) Steps() int {
	n := 0
	for _, p := range r.Parts {
		n += p.StepsTaken
	}
	return n
}

func validateHorizon(set *dynset.Doubleton, tEnd float64) error {
	if math.IsNaN(tEnd) || math.IsInf(tEnd, 0) {
		return fmt.Errorf("%w: end time %v", ErrHorizon, tEnd)
	}
	if tEnd < set.Time.Lo() {
		return fmt.Errorf("%w: end time %g before start %s", ErrHorizon, tEnd, set.Time)
	}
	return nil
}

func record(info dynamo.StepInfo, set *dynset.Doubleton) dynamo.Record {
	box := set.Hull()
	return dynamo.Record{
		Time:  set.Time,
		Step:  info.Step,
		Box:   box,
		Width: box.MaxWidth(),
	}
}

// Grid splits box into parts pieces along every coordinate. Neighbouring
// pieces share their boundary, so the union is exactly box.
func Grid(box interval.Vector, parts int) []interval.Vector {
	if parts < 1 {
		parts = 1
	}
	cuts := make([][]interval.Interval, len(box))
	for i, c := range box {
		cuts[i] = splitInterval(c, parts)
	}
	out := []interval.Vector{{}}
	for i := range box {
		next := make([]interval.Vector, 0, len(out)*parts)
		for _, prefix := range out {
			for _, piece := range cuts[i] {
				v := make(interval.Vector, i+1)
				copy(v, prefix)
				v[i] = piece
				next = append(next, v)
			}
		}
		out = next
	}
	return out
}

func splitInterval(a interval.Interval, parts int) []interval.Interval {
	if a.IsPoint() {
		return []interval.Interval{a}
	}
	pts := make([]float64, parts+1)
	pts[0], pts[parts] = a.Lo(), a.Hi()
	w := a.Hi() - a.Lo()
	for k := 1; k < parts; k++ {
		pts[k] = a.Lo() + w*float64(k)/float64(parts)
	}
	out := make([]interval.Interval, 0, parts)
	for k := 0; k < parts; k++ {
		lo, hi := pts[k], pts[k+1]
		if hi < lo {
			hi = lo
		}
		out = append(out, interval.Must(lo, hi))
	}
	return out
}
