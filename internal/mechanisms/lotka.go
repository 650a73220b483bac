package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// LotkaVolterra is the autocatalytic oscillating scheme
//
//	A + X -> 2X   (k1, A held constant)
//	X + Y -> 2Y   (k2)
//	Y -> P        (k3)
//
// giving dX/dt = k1·X - k2·X·Y and dY/dt = k2·X·Y - k3·Y. Closed
// orbits around the fixed point (k3/k2, k1/k2); no conserved total.
type LotkaVolterra struct {
	k1, k2, k3 float64
}

func NewLotkaVolterra() *LotkaVolterra {
	return &LotkaVolterra{k1: 1.0, k2: 0.5, k3: 1.0}
}

func (lv *LotkaVolterra) Dim() int          { return 2 }
func (lv *LotkaVolterra) Species() []string { return []string{"X", "Y"} }

func (lv *LotkaVolterra) Rates(c kin.Conc, _ float64) kin.Conc {
	x, y := c[0], c[1]
	return kin.Conc{
		lv.k1*x - lv.k2*x*y,
		lv.k2*x*y - lv.k3*y,
	}
}

func (lv *LotkaVolterra) DefaultConc() kin.Conc { return kin.Conc{1.0, 1.0} }

func (lv *LotkaVolterra) Equilibrium(_ float64) kin.Conc {
	return kin.Conc{lv.k3 / lv.k2, lv.k1 / lv.k2}
}

func (lv *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{"k1": lv.k1, "k2": lv.k2, "k3": lv.k3}
}

func (lv *LotkaVolterra) SetParam(name string, value float64) {
	switch name {
	case "k1":
		lv.k1 = value
	case "k2":
		lv.k2 = value
	case "k3":
		lv.k3 = value
	}
}
