package regression

import "fmt"

// FitResult is the outcome of a least-squares fit.
//
// Fields:
//   - Slope: Change in y per unit x
//   - Intercept: Value of the line at x = 0
//   - RSquared: Coefficient of determination (1 = perfect fit, 0 = no better than the mean)
type FitResult struct {
	// Slope is the fitted slope.
	Slope float64
	// Intercept is the fitted intercept.
	Intercept float64
	// RSquared is the coefficient of determination, reported unclamped.
	RSquared float64
}

// Predict evaluates the fitted line at x.
func (r FitResult) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Segment returns the endpoints of the fitted line between x0 and x1.
//
// Renderers use Segment(0, 1) to draw the fit across a unit domain.
func (r FitResult) Segment(x0, x1 float64) (Point, Point) {
	return Point{X: x0, Y: r.Predict(x0)}, Point{X: x1, Y: r.Predict(x1)}
}

// Label returns the R² annotation with two decimals, e.g. "R² = 0.73".
func (r FitResult) Label() string {
	return fmt.Sprintf("R² = %.2f", r.RSquared)
}

// Formula returns a human-readable form of the line.
func (r FitResult) Formula() string {
	if r.Intercept < 0 {
		return fmt.Sprintf("y = %.4f*x - %.4f", r.Slope, -r.Intercept)
	}

	return fmt.Sprintf("y = %.4f*x + %.4f", r.Slope, r.Intercept)
}

// Estimator returns a LinearEstimator carrying the fitted coefficients.
func (r FitResult) Estimator() *LinearEstimator {
	return NewLinearEstimator(r.Slope, r.Intercept)
}

// String returns a string representation of the result.
func (r FitResult) String() string {
	return fmt.Sprintf("FitResult{Slope: %.4f, Intercept: %.4f, R²: %.4f}",
		r.Slope, r.Intercept, r.RSquared)
}
