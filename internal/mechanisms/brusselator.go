package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// Brusselator is the autocatalytic oscillator with reservoir species A
// and B held constant:
//
//	dX/dt = a + X²Y - (b+1)X
//	dY/dt = bX - X²Y
//
// For b > 1 + a² the fixed point is unstable and the system settles
// onto a limit cycle. Totals are not conserved (open system).
type Brusselator struct {
	a, b float64
}

func NewBrusselator() *Brusselator {
	return &Brusselator{a: 1.0, b: 3.0}
}

func (br *Brusselator) Dim() int          { return 2 }
func (br *Brusselator) Species() []string { return []string{"X", "Y"} }

func (br *Brusselator) Rates(c kin.Conc, _ float64) kin.Conc {
	x, y := c[0], c[1]
	return kin.Conc{
		br.a + x*x*y - (br.b+1)*x,
		br.b*x - x*x*y,
	}
}

func (br *Brusselator) DefaultConc() kin.Conc { return kin.Conc{1.0, 1.0} }

// Equilibrium returns the (possibly unstable) fixed point (a, b/a).
// The total argument is ignored; the system is open.
func (br *Brusselator) Equilibrium(_ float64) kin.Conc {
	return kin.Conc{br.a, br.b / br.a}
}

func (br *Brusselator) GetParams() map[string]float64 {
	return map[string]float64{"a": br.a, "b": br.b}
}

func (br *Brusselator) SetParam(name string, value float64) {
	switch name {
	case "a":
		br.a = value
	case "b":
		br.b = value
	}
}
