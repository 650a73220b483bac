// Package kin provides core primitives for chemical kinetics simulation.
//
// The package defines the fundamental interfaces and types for numerical
// integration of reaction rate equations (dC/dt = f(C, t)):
//
//   - [Conc]: vector of species concentrations
//   - [Mechanism]: interface for reaction networks
//   - [Integrator]: numerical stepper interface
//   - [Metric]: per-run observation (mass drift, positivity, ...)
//
// # Example
//
//	mech := mechanisms.NewTriangle()
//	integ := integrators.NewRK4()
//	s := sim.New(mech, integ)
//	result, _ := s.Run(ctx, mech.DefaultConc(), cfg)
//
// # Thread Safety
//
// Mechanisms must be pure: Rates may be called at arbitrary,
// non-monotonic time points and more than once per step. Integrators
// carry scratch buffers and are NOT safe for concurrent use; the
// [sim.Ensemble] type constructs one per run.
package kin
