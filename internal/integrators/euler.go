package integrators

import "github.com/san-kum/kinsim/internal/kin"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(m kin.Mechanism, c kin.Conc, t float64, dt float64) kin.Conc {
	dc := m.Rates(c, t)
	result := make(kin.Conc, len(c))
	for i := range c {
		result[i] = c[i] + dt*dc[i]
	}
	return result
}
