package sim

import (
	"sync"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/integrators"
)

// SolverPool recycles Taylor solvers for one vector field. Every solver
// works on its own copy of the graph.
type SolverPool struct {
	pool sync.Pool
}

// NewSolverPool checks that field and cfg make a valid solver.
func NewSolverPool(field *autodiff.Graph, cfg dynamo.Config, opts ...integrators.Option) (*SolverPool, error) {
	first, err := integrators.NewTaylor(field.Clone(), cfg, opts...)
	if err != nil {
		return nil, err
	}
	p := &SolverPool{}
	p.pool.New = func() any {
		s, _ := integrators.NewTaylor(field.Clone(), cfg, opts...)
		return s
	}
	p.pool.Put(first)
	return p, nil
}

// Get returns a solver ready for a new run.
func (p *SolverPool) Get() *integrators.Taylor {
	s := p.pool.Get().(*integrators.Taylor)
	s.Reset()
	return s
}

func (p *SolverPool) Put(s *integrators.Taylor) {
	if s != nil {
		p.pool.Put(s)
	}
}
