package scoring

import "math"

const (
	// DailyCalorieThreshold is the nominal daily intake above which items are penalised.
	DailyCalorieThreshold = 2000.0
	// ShrinkLogBase divides non-negative scores by log_5(excess calories).
	ShrinkLogBase = 5.0
	// AmplifyLogBase multiplies negative scores by log_25(excess calories).
	AmplifyLogBase = 25.0
)

// Penalty returns the multiplicative factor applied to an item's raw score.
//
//	calories <= 2000          → 1
//	rawScore >= 0             → 1 / log_5(calories-2000)
//	rawScore <  0             → log_25(calories-2000)
//
// Any logarithm that is non-finite or <= 0 yields 1.
func Penalty(calories, rawScore float64) float64 {
	if !(calories > DailyCalorieThreshold) {
		return 1.0
	}
	diff := calories - DailyCalorieThreshold

	shrink := logBase(diff, ShrinkLogBase)
	if !usableLog(shrink) {
		return 1.0
	}
	if rawScore >= 0 {
		return 1.0 / shrink
	}

	amplify := logBase(diff, AmplifyLogBase)
	if !usableLog(amplify) {
		return 1.0
	}
	return amplify
}

func logBase(x, base float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log(x) / math.Log(base)
}

func usableLog(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
