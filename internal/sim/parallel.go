package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/kinsim/internal/kin"
)

// Ensemble runs the same mechanism from jittered initial
// concentrations, one goroutine per run. Integrators carry scratch
// buffers, so each run gets its own mechanism and integrator from the
// supplied factories.
type Ensemble struct {
	mechFn    func() kin.Mechanism
	integFn   func() kin.Integrator
	numRuns   int
	jitter    float64
	seedStart int64
}

func NewEnsemble(mechFn func() kin.Mechanism, integFn func() kin.Integrator, numRuns int, jitter float64, seedStart int64) *Ensemble {
	return &Ensemble{
		mechFn:    mechFn,
		integFn:   integFn,
		numRuns:   numRuns,
		jitter:    jitter,
		seedStart: seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context, c0 kin.Conc, cfg kin.Config) ([]*kin.Result, error) {
	results := make([]*kin.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			perturbed := c0.Clone()
			for j := range perturbed {
				perturbed[j] *= 1 + e.jitter*(2*rng.Float64()-1)
				if perturbed[j] < 0 {
					perturbed[j] = 0
				}
			}

			s := New(e.mechFn(), e.integFn())
			results[idx], errs[idx] = s.Run(ctx, perturbed, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
