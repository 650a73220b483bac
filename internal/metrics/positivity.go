package metrics

import "github.com/san-kum/kinsim/internal/kin"

// Positivity counts observations where any concentration dipped below
// zero beyond round-off. Physical trajectories stay non-negative; a
// rising count means the step size is too large for the fast
// reactions.
type Positivity struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewPositivity() *Positivity {
	return &Positivity{
		name:      "negativity_violations",
		tolerance: -1e-12,
	}
}

func (p *Positivity) Name() string { return p.name }

func (p *Positivity) Observe(c kin.Conc, t float64) {
	p.samples++
	for _, v := range c {
		if v < p.tolerance {
			p.violations++
			return
		}
	}
}

func (p *Positivity) Value() float64 { return float64(p.violations) }

func (p *Positivity) Reset() {
	p.violations = 0
	p.samples = 0
}
