// Package mechanisms provides reaction network models for simulation.
//
// Each model implements the [kin.Mechanism] interface, defining the
// rate equations governing species concentrations:
//
//   - [Triangle]: three-species reversible scheme A<=>B, B<=>C, A<=>C
//   - [Cascade]: irreversible decay chain A -> B -> C
//   - [Robertson]: stiff autocatalytic benchmark
//   - [Brusselator], [Oregonator], [LotkaVolterra]: oscillators
//   - [MichaelisMenten]: enzyme kinetics
//   - [Network]: generic mass-action network from stoichiometric steps
//
// Closed networks also implement [kin.Conserver] so mass drift can be
// monitored, and linear ones [kin.Equilibrator] for their exact fixed
// point.
package mechanisms
