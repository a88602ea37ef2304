// Package regression fits ordinary-least-squares lines to 2D point sets.
//
// The package is the computational core of fitview: it takes an ordered set
// of (x, y) points and produces a FitResult holding the slope, intercept and
// coefficient of determination (R²) of the best-fit line y = slope*x + intercept.
// Rendering layers consume FitResult only; nothing here knows about charts.
//
// # Basic Usage
//
//	points := regression.PointSet{
//	    {X: 0.40, Y: 0.40},
//	    {X: 0.50, Y: 0.60},
//	    {X: 0.55, Y: 0.40},
//	}
//	fit, err := regression.Fit(points)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fit.Label()) // "R² = 0.xx"
//
// # Degenerate Inputs
//
// Fit never fails on a non-empty point set:
//
//   - All x equal: the slope is defined as 0 and the intercept becomes mean(y).
//   - All y equal: the total sum of squares is zero and RSquared is defined as 0.
//
// An empty point set is rejected with errs.ErrEmptyPointSet.
//
// RSquared is reported as computed and is never clamped, so a pathological
// input can surface a negative value.
//
// # Estimators
//
// Fitted coefficients can be persisted and turned back into a predictor:
//
//	est, err := regression.NewEstimator("linear", []float64{fit.Slope, fit.Intercept})
//	y := est.Estimate(0.5)
//
// # Thread Safety
//
// Fit, Summarize, Residuals and RMSE are pure functions and safe for concurrent
// use. Estimators are not safe for concurrent SetCoefficients calls.
package regression
