package regression

import "math"

// Residuals returns y - fit.Predict(x) for every point, in order.
func Residuals(points PointSet, fit FitResult) []float64 {
	res := make([]float64, len(points))
	for i, p := range points {
		res[i] = p.Y - fit.Predict(p.X)
	}

	return res
}

// RMSE calculates the root mean square error of fit over points.
//
// Formula: RMSE = √(Σ(y - predicted)² / n)
//
// Returns 0 for an empty point set.
func RMSE(points PointSet, fit FitResult) float64 {
	if len(points) == 0 {
		return 0
	}

	sumSq := 0.0
	for _, p := range points {
		diff := p.Y - fit.Predict(p.X)
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(points)))
}

// Mean returns the arithmetic mean of the y values, or 0 for an empty set.
func Mean(points PointSet) float64 {
	if len(points) == 0 {
		return 0
	}

	sum := 0.0
	for _, p := range points {
		sum += p.Y
	}

	return sum / float64(len(points))
}
