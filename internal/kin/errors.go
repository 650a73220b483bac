package kin

import "errors"

// Domain errors for kinetics runs.
var (
	// ErrInvalidConc indicates a concentration vector with NaN or Inf
	// components.
	ErrInvalidConc = errors.New("kin: invalid concentration (NaN or Inf detected)")

	// ErrNegativeConc indicates a concentration went negative beyond
	// round-off and clamping is disabled.
	ErrNegativeConc = errors.New("kin: negative concentration")

	// ErrStepTooSmall indicates the adaptive step fell below the minimum.
	ErrStepTooSmall = errors.New("kin: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched concentration/mechanism
	// dimensions.
	ErrDimensionMismatch = errors.New("kin: dimension mismatch between concentration and mechanism")

	// ErrBadGrid indicates an output grid that is empty or not strictly
	// increasing.
	ErrBadGrid = errors.New("kin: output grid must be strictly increasing")

	// ErrUnknownSpecies indicates a species name not present in the
	// mechanism.
	ErrUnknownSpecies = errors.New("kin: unknown species")
)
