package scoring

import "math"

// pivotEpsilon is the magnitude below which a pivot (or an elimination
// factor) is treated as zero.
const pivotEpsilon = 1e-12

// Solve5 solves a·x = b by Gauss–Jordan elimination with partial pivoting.
// a and b are working copies and are overwritten. A singular or
// near-singular system yields the zero Quartic.
func Solve5(a *[5][5]float64, b *[5]float64) Quartic {
	const n = 5
	for i := 0; i < n; i++ {
		maxRow := i
		for r := i + 1; r < n; r++ {
			if math.Abs(a[r][i]) > math.Abs(a[maxRow][i]) {
				maxRow = r
			}
		}
		if math.Abs(a[maxRow][i]) < pivotEpsilon {
			return Quartic{}
		}
		if maxRow != i {
			a[i], a[maxRow] = a[maxRow], a[i]
			b[i], b[maxRow] = b[maxRow], b[i]
		}

		pivot := a[i][i]
		for j := i; j < n; j++ {
			a[i][j] /= pivot
		}
		b[i] /= pivot

		// Full reduction: clear column i above and below the pivot.
		for r := 0; r < n; r++ {
			if r == i {
				continue
			}
			factor := a[r][i]
			if math.Abs(factor) < pivotEpsilon {
				continue
			}
			for c := i; c < n; c++ {
				a[r][c] -= factor * a[i][c]
			}
			b[r] -= factor * b[i]
		}
	}

	var x Quartic
	copy(x[:], b[:])
	if !x.finite() {
		return Quartic{}
	}
	return x
}
