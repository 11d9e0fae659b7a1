package scoring

import (
	"math"
	"testing"
)

func TestSolve5_Identity(t *testing.T) {
	var a [5][5]float64
	for i := range a {
		a[i][i] = 1
	}
	b := [5]float64{1, 2, 3, 4, 5}
	got := Solve5(&a, &b)
	want := Quartic{1, 2, 3, 4, 5}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSolve5_NeedsPivoting(t *testing.T) {
	// a[0][0] is zero, so the first step must swap rows.
	a := [5][5]float64{
		{0, 2, 0, 0, 1},
		{3, 0, 1, 0, 0},
		{0, 1, 4, 0, 0},
		{1, 0, 0, 5, 0},
		{0, 0, 1, 0, 2},
	}
	x := [5]float64{1, -1, 2, 0.5, -3}
	var b [5]float64
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			b[r] += a[r][c] * x[c]
		}
	}

	got := Solve5(&a, &b)
	for i := range x {
		if math.Abs(got[i]-x[i]) > 1e-12 {
			t.Errorf("x[%d]: expected %f, got %f", i, x[i], got[i])
		}
	}
}

func TestSolve5_SingularReturnsZero(t *testing.T) {
	tests := []struct {
		name string
		a    [5][5]float64
	}{
		{"all zero", [5][5]float64{}},
		{"duplicate rows", [5][5]float64{
			{1, 2, 3, 4, 5},
			{1, 2, 3, 4, 5},
			{0, 1, 0, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 1, 0},
		}},
		{"tiny pivot", [5][5]float64{
			{1e-13, 0, 0, 0, 0},
			{0, 1, 0, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 1, 0},
			{0, 0, 0, 0, 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.a
			b := [5]float64{1, 1, 1, 1, 1}
			if got := Solve5(&a, &b); got != (Quartic{}) {
				t.Errorf("expected zero coefficients, got %v", got)
			}
		})
	}
}
