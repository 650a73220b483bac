package kin

import (
	"fmt"
	"math"
)

// UniformGrid builds a fixed-step output grid from t0 to t1 inclusive.
// The step must divide the span (up to round-off); the final point is
// exactly t1.
func UniformGrid(t0, t1, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("grid step must be positive, got %g", dt)
	}
	if t1 <= t0 {
		return nil, fmt.Errorf("grid end %g must exceed start %g", t1, t0)
	}
	steps := (t1 - t0) / dt
	n := int(steps + 0.5)
	if n < 1 || math.Abs(steps-float64(n)) > 1e-9*math.Max(1, steps) {
		return nil, fmt.Errorf("grid step %g does not divide span [%g, %g]", dt, t0, t1)
	}
	grid := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		grid = append(grid, t0+float64(i)*dt)
	}
	grid = append(grid, t1)
	return grid, nil
}

// TwoSegmentGrid concatenates a finely spaced grid before the join time
// with a coarser one after it. Useful when the fast reactions
// equilibrate early and only the slow approach remains interesting.
func TwoSegmentGrid(t0, join, t1, fineDt, coarseDt float64) ([]float64, error) {
	if join <= t0 || t1 <= join {
		return nil, fmt.Errorf("join time %g must lie strictly between %g and %g", join, t0, t1)
	}
	fine, err := UniformGrid(t0, join, fineDt)
	if err != nil {
		return nil, err
	}
	coarse, err := UniformGrid(join, t1, coarseDt)
	if err != nil {
		return nil, err
	}
	// fine ends where coarse begins; drop the duplicate join point
	return append(fine, coarse[1:]...), nil
}

// ValidateGrid checks that a caller-supplied grid is usable.
func ValidateGrid(grid []float64) error {
	if len(grid) < 2 {
		return ErrBadGrid
	}
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return ErrBadGrid
		}
	}
	return nil
}
