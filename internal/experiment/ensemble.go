package experiment

import (
	"context"
	"fmt"
	"sync"
)

// Ensemble draws several experiments concurrently. Each draw gets its own
// surface and metrics; the grammar snapshots are shared read-only.
type Ensemble struct {
	members []*Experiment
}

func NewEnsemble(members ...*Experiment) *Ensemble {
	return &Ensemble{members: members}
}

// Run returns one run per member, in member order. The first failure, in
// member order, is returned after every draw has finished.
func (e *Ensemble) Run(ctx context.Context) ([]*Run, error) {
	runs := make([]*Run, len(e.members))
	errs := make([]error, len(e.members))

	var wg sync.WaitGroup
	for i, m := range e.members {
		wg.Add(1)
		go func(idx int, m *Experiment) {
			defer wg.Done()
			runs[idx], errs[idx] = m.Run(ctx)
		}(i, m)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.members[i].Name(), err)
		}
	}
	return runs, nil
}
