package kin

import (
	"math"
	"testing"
)

func TestUniformGrid(t *testing.T) {
	grid, err := UniformGrid(0, 1.0, 0.1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	if len(grid) != 11 {
		t.Fatalf("expected 11 points, got %d", len(grid))
	}
	if grid[0] != 0 {
		t.Errorf("expected start 0, got %g", grid[0])
	}
	if grid[10] != 1.0 {
		t.Errorf("expected end exactly 1, got %g", grid[10])
	}

	if err := ValidateGrid(grid); err != nil {
		t.Errorf("uniform grid failed validation: %v", err)
	}
}

func TestUniformGridIndivisibleStep(t *testing.T) {
	// 0.3 does not divide [0, 1]; the grid must not silently stop
	// short of the end point
	if _, err := UniformGrid(0, 1.0, 0.3); err == nil {
		t.Error("expected error for step that does not divide the span")
	}

	grid, err := UniformGrid(0, 1.0, 0.25)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if len(grid) != 5 {
		t.Fatalf("expected 5 points, got %d", len(grid))
	}
	if grid[len(grid)-1] != 1.0 {
		t.Errorf("expected end exactly 1, got %g", grid[len(grid)-1])
	}
}

func TestUniformGridErrors(t *testing.T) {
	if _, err := UniformGrid(0, 1, 0); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := UniformGrid(1, 1, 0.1); err == nil {
		t.Error("expected error for empty span")
	}
	if _, err := UniformGrid(1, 0, 0.1); err == nil {
		t.Error("expected error for reversed span")
	}
}

func TestTwoSegmentGrid(t *testing.T) {
	grid, err := TwoSegmentGrid(0, 0.1, 1.0, 0.01, 0.1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	// 11 fine points plus 9 coarse (join point deduplicated)
	if len(grid) != 20 {
		t.Fatalf("expected 20 points, got %d", len(grid))
	}

	if err := ValidateGrid(grid); err != nil {
		t.Errorf("two-segment grid failed validation: %v", err)
	}

	// spacing switches at the join
	if math.Abs((grid[1]-grid[0])-0.01) > 1e-12 {
		t.Errorf("fine spacing: got %g", grid[1]-grid[0])
	}
	last := len(grid) - 1
	if math.Abs((grid[last]-grid[last-1])-0.1) > 1e-9 {
		t.Errorf("coarse spacing: got %g", grid[last]-grid[last-1])
	}
}

func TestTwoSegmentGridErrors(t *testing.T) {
	if _, err := TwoSegmentGrid(0, 0, 1, 0.01, 0.1); err == nil {
		t.Error("expected error for join at start")
	}
	if _, err := TwoSegmentGrid(0, 1, 1, 0.01, 0.1); err == nil {
		t.Error("expected error for join at end")
	}
}

func TestValidateGrid(t *testing.T) {
	if err := ValidateGrid([]float64{0}); err == nil {
		t.Error("expected error for single point")
	}
	if err := ValidateGrid([]float64{0, 0.5, 0.5}); err == nil {
		t.Error("expected error for repeated point")
	}
	if err := ValidateGrid([]float64{0, 0.5, 0.2}); err == nil {
		t.Error("expected error for decreasing points")
	}
	if err := ValidateGrid([]float64{0, 0.5, 1.0}); err != nil {
		t.Errorf("valid grid rejected: %v", err)
	}
}
