package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FitLine performs ordinary least-squares regression of y on x and
// returns the intercept and slope. ok is false when fewer than two
// observations exist or the feature is constant (the line is
// underdetermined).
func FitLine(x, y []float64) (intercept, slope float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, false
	}

	intercept, slope = stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) ||
		math.IsInf(intercept, 0) || math.IsInf(slope, 0) {
		return 0, 0, false
	}

	return intercept, slope, true
}

// PredictLine evaluates a fitted line at a single feature value
func PredictLine(intercept, slope, x float64) float64 {
	return intercept + slope*x
}
