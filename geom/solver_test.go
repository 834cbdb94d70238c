package geom

import (
	"math"
	"sort"
	"testing"
)

func rootsEqual(got, want []float64, eps float64) bool {
	if len(got) != len(want) {
		return false
	}
	got = append([]float64(nil), got...)
	sort.Float64s(got)
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			return false
		}
	}
	return true
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, -3, 2, []float64{1, 2}},
		{"double root", 1, -2, 1, []float64{1}},
		{"no real roots", 1, 0, 1, nil},
		{"linear", 0, 2, -4, []float64{2}},
		{"all zero", 0, 0, 0, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveQuadratic(tt.a, tt.b, tt.c)
			if !rootsEqual(got, tt.want, 1e-9) {
				t.Errorf("SolveQuadratic(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestSolveCubic(t *testing.T) {
	// (x-1)(x-2)(x-3)
	got := SolveCubic(1, -6, 11, -6)
	if !rootsEqual(got, []float64{1, 2, 3}, 1e-9) {
		t.Errorf("SolveCubic = %v, want [1 2 3]", got)
	}

	// leading zero degrades to the quadratic
	got = SolveCubic(0, 1, -3, 2)
	if !rootsEqual(got, []float64{1, 2}, 1e-9) {
		t.Errorf("SolveCubic with a=0 = %v, want [1 2]", got)
	}
}

func TestSolveInUnitInterval(t *testing.T) {
	// (x-0.25)(x-0.5)(x-4)
	got := SolveCubicInUnitInterval(1, -4.75, 3.125, -0.5)
	if !rootsEqual(got, []float64{0.25, 0.5}, 1e-9) {
		t.Errorf("SolveCubicInUnitInterval = %v, want [0.25 0.5]", got)
	}

	if got := SolveQuadraticInUnitInterval(1, -5, 6); got != nil {
		t.Errorf("SolveQuadraticInUnitInterval = %v, want nil", got)
	}
}
