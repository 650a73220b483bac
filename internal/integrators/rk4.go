package integrators

import "github.com/san-kum/kinsim/internal/kin"

type RK4 struct {
	k1, k2, k3, k4 kin.Conc
	scratch        kin.Conc
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(kin.Conc, n)
		r.k2 = make(kin.Conc, n)
		r.k3 = make(kin.Conc, n)
		r.k4 = make(kin.Conc, n)
		r.scratch = make(kin.Conc, n)
	}
}

func (r *RK4) Step(m kin.Mechanism, c kin.Conc, t, dt float64) kin.Conc {
	n := len(c)
	r.ensureScratch(n)

	k1 := m.Rates(c, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = c[i] + dt*0.5*r.k1[i]
	}
	k2 := m.Rates(r.scratch, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = c[i] + dt*0.5*r.k2[i]
	}
	k3 := m.Rates(r.scratch, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = c[i] + dt*r.k3[i]
	}
	k4 := m.Rates(r.scratch, t+dt)
	copy(r.k4, k4)

	result := make(kin.Conc, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = c[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
