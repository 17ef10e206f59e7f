package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/integrators"
	"github.com/san-kum/rigsim/internal/interval"
)

// Cover integrates box split into parts pieces per coordinate, each with
// its own solver, and returns the hull of the final sets. The first error
// cancels the remaining parts.
func Cover(ctx context.Context, field *autodiff.Graph, box interval.Vector, parts int, cfg CoverConfig) (*CoverResult, error) {
	if parts < 1 {
		return nil, fmt.Errorf("sim: cover needs at least one part, got %d", parts)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	start := interval.Point(cfg.Start)
	if err := validateHorizon(dynset.New(start, box), cfg.End); err != nil {
		return nil, err
	}
	pool, err := NewSolverPool(field, cfg.Solver, integrators.WithLogger(log))
	if err != nil {
		return nil, err
	}

	boxes := Grid(box, parts)
	out := &CoverResult{Parts: make([]*dynamo.Result, len(boxes))}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range boxes {
		g.Go(func() error {
			s := pool.Get()
			defer pool.Put(s)
			tm := New(s)
			tm.SetLogger(log)
			for _, o := range cfg.Observers {
				tm.AddObserver(o)
			}
			res, err := tm.Run(gctx, dynset.New(start, b).WithPolicy(cfg.Policy), cfg.End)
			if err != nil {
				return fmt.Errorf("sim: part %d %s: %w", i, b, err)
			}
			out.Parts[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Hull = out.Parts[0].FinalBox()
	for _, p := range out.Parts[1:] {
		out.Hull = interval.HullVector(out.Hull, p.FinalBox())
	}
	log.Info("cover finished", "parts", len(boxes), "steps", out.Steps(), "width", out.Hull.MaxWidth())
	return out, nil
}
