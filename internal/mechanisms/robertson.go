package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// Robertson is the classic stiff kinetics benchmark:
//
//	A -> B            (k1 = 0.04)
//	B + B -> C + B    (k2 = 3e7)
//	B + C -> A + C    (k3 = 1e4)
//
// Rate constants span nine orders of magnitude; explicit integrators
// need a hopelessly small step, which is what the backward Euler
// stepper is for.
type Robertson struct {
	k1, k2, k3 float64
}

func NewRobertson() *Robertson {
	return &Robertson{k1: 0.04, k2: 3e7, k3: 1e4}
}

func (r *Robertson) Dim() int          { return 3 }
func (r *Robertson) Species() []string { return []string{"A", "B", "C"} }

func (r *Robertson) Rates(c kin.Conc, _ float64) kin.Conc {
	a, b, cc := c[0], c[1], c[2]
	return kin.Conc{
		-r.k1*a + r.k3*b*cc,
		r.k1*a - r.k3*b*cc - r.k2*b*b,
		r.k2 * b * b,
	}
}

func (r *Robertson) DefaultConc() kin.Conc { return kin.Conc{1, 0, 0} }

func (r *Robertson) Total(c kin.Conc) float64 { return c[0] + c[1] + c[2] }

func (r *Robertson) GetParams() map[string]float64 {
	return map[string]float64{"k1": r.k1, "k2": r.k2, "k3": r.k3}
}

func (r *Robertson) SetParam(name string, value float64) {
	switch name {
	case "k1":
		r.k1 = value
	case "k2":
		r.k2 = value
	case "k3":
		r.k3 = value
	}
}
