package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// Cascade is the irreversible two-step decay A -> B -> C.
// Everything ends up in C; the total is conserved throughout.
type Cascade struct {
	ka, kb float64
}

func NewCascade() *Cascade {
	return &Cascade{ka: 2.0, kb: 0.5}
}

func (cs *Cascade) Dim() int          { return 3 }
func (cs *Cascade) Species() []string { return []string{"A", "B", "C"} }

func (cs *Cascade) Rates(c kin.Conc, _ float64) kin.Conc {
	a, b := c[0], c[1]
	return kin.Conc{
		-cs.ka * a,
		cs.ka*a - cs.kb*b,
		cs.kb * b,
	}
}

func (cs *Cascade) DefaultConc() kin.Conc { return kin.Conc{1, 0, 0} }

func (cs *Cascade) Total(c kin.Conc) float64 { return c[0] + c[1] + c[2] }

func (cs *Cascade) Equilibrium(total float64) kin.Conc { return kin.Conc{0, 0, total} }

func (cs *Cascade) GetParams() map[string]float64 {
	return map[string]float64{"ka": cs.ka, "kb": cs.kb}
}

func (cs *Cascade) SetParam(name string, value float64) {
	switch name {
	case "ka":
		cs.ka = value
	case "kb":
		cs.kb = value
	}
}
