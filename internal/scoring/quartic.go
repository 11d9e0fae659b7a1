package scoring

import "math"

// Quartic holds the coefficients a0..a4 of
// y = a0 + a1·x + a2·x² + a3·x³ + a4·x⁴.
type Quartic [5]float64

// Eval evaluates the polynomial at x.
func (q Quartic) Eval(x float64) float64 {
	return q[0] + q[1]*x + q[2]*x*x + q[3]*x*x*x + q[4]*x*x*x*x
}

// Add returns the elementwise sum of q and o.
func (q Quartic) Add(o Quartic) Quartic {
	return Quartic{q[0] + o[0], q[1] + o[1], q[2] + o[2], q[3] + o[3], q[4] + o[4]}
}

// ShiftToMin moves the curve vertically so that its minimum over xs equals
// target. Only a0 changes. An empty domain or a non-finite minimum leaves
// q unchanged.
func (q Quartic) ShiftToMin(xs []float64, target float64) Quartic {
	if len(xs) == 0 {
		return q
	}
	minY := math.Inf(1)
	for _, x := range xs {
		if y := q.Eval(x); y < minY {
			minY = y
		}
	}
	return q.shiftBy(target, minY)
}

// ShiftToMax is the mirror of ShiftToMin for the curve maximum.
func (q Quartic) ShiftToMax(xs []float64, target float64) Quartic {
	if len(xs) == 0 {
		return q
	}
	maxY := math.Inf(-1)
	for _, x := range xs {
		if y := q.Eval(x); y > maxY {
			maxY = y
		}
	}
	return q.shiftBy(target, maxY)
}

func (q Quartic) shiftBy(target, extremum float64) Quartic {
	if math.IsNaN(extremum) || math.IsInf(extremum, 0) {
		return q
	}
	q[0] += target - extremum
	return q
}

func (q Quartic) finite() bool {
	for _, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FitQuartic fits a degree-4 polynomial to (xs[i], ys[i]) by least squares,
// building the normal equations from power sums in a single pass. With fewer
// than five distinct x values the system is usually singular and the zero
// Quartic comes back.
func FitQuartic(xs, ys []float64) Quartic {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return Quartic{}
	}

	var sx [9]float64  // Σ x^k, k = 0..8
	var sxy [5]float64 // Σ x^k·y, k = 0..4
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		p := 1.0
		for k := 0; k < 9; k++ {
			sx[k] += p
			if k <= 4 {
				sxy[k] += p * y
			}
			p *= x
		}
	}

	var a [5][5]float64
	var b [5]float64
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			a[r][c] = sx[r+c]
		}
		b[r] = sxy[r]
	}
	return Solve5(&a, &b)
}
