package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// Oregonator is the three-variable Field-Noyes model of the
// Belousov-Zhabotinsky reaction, in the classic scaled form:
//
//	dX/dt = s(Y - XY + X - qX²)
//	dY/dt = (-Y - XY + fZ)/s
//	dZ/dt = w(X - Z)
//
// Stiff and oscillatory; X spikes over several decades each cycle.
type Oregonator struct {
	s, q, w, f float64
}

func NewOregonator() *Oregonator {
	return &Oregonator{s: 77.27, q: 8.375e-6, w: 0.161, f: 1.0}
}

func (o *Oregonator) Dim() int          { return 3 }
func (o *Oregonator) Species() []string { return []string{"X", "Y", "Z"} }

func (o *Oregonator) Rates(c kin.Conc, _ float64) kin.Conc {
	x, y, z := c[0], c[1], c[2]
	return kin.Conc{
		o.s * (y - x*y + x - o.q*x*x),
		(-y - x*y + o.f*z) / o.s,
		o.w * (x - z),
	}
}

func (o *Oregonator) DefaultConc() kin.Conc { return kin.Conc{1, 2, 3} }

func (o *Oregonator) GetParams() map[string]float64 {
	return map[string]float64{"s": o.s, "q": o.q, "w": o.w, "f": o.f}
}

func (o *Oregonator) SetParam(name string, value float64) {
	switch name {
	case "s":
		o.s = value
	case "q":
		o.q = value
	case "w":
		o.w = value
	case "f":
		o.f = value
	}
}
