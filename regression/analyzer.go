package regression

import (
	"fmt"

	"github.com/arloliu/fitview/errs"
)

// Sums holds the raw accumulations a least-squares fit is derived from.
type Sums struct {
	N   int
	Sx  float64
	Sy  float64
	Sxx float64
	Syy float64
	Sxy float64

	// EqualX reports whether every point shares the same x (vacuously true
	// for an empty set).
	EqualX bool
}

// Summarize accumulates the sums of x, y, x², y² and xy over the point set.
//
// Syy is not needed by the linear fit itself. It is kept so correlation-style
// statistics can be derived from the same single pass.
func Summarize(points PointSet) Sums {
	s := Sums{N: len(points), EqualX: true}
	for _, p := range points {
		if p.X != points[0].X {
			s.EqualX = false
		}
		s.Sx += p.X
		s.Sy += p.Y
		s.Sxx += p.X * p.X
		s.Syy += p.Y * p.Y
		s.Sxy += p.X * p.Y
	}

	return s
}

// Denominator returns n*Sxx - Sx², the slope denominator. It is exactly zero
// when every x is identical or the set is empty, even where rounding in the
// raw sums would leave a tiny residue (seven copies of 0.1 give ~1e-16).
func (s Sums) Denominator() float64 {
	if s.EqualX {
		return 0
	}
	n := float64(s.N)

	return n*s.Sxx - s.Sx*s.Sx
}

// Fit computes the ordinary-least-squares line y = slope*x + intercept over
// points, together with its coefficient of determination.
//
// Parameters:
//   - points: Ordered point set to fit (must not be empty)
//
// Returns:
//   - FitResult: Slope, intercept and R² of the fit
//   - error: errs.ErrEmptyPointSet if points is empty
//
// When all x values are equal the slope is 0 and the intercept is mean(y).
// When all y values are equal RSquared is 0. Neither case is an error.
//
// Example:
//
//	fit, err := regression.Fit(regression.PointSet{{X: 1, Y: 2}, {X: 2, Y: 4}})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(fit.Slope, fit.Intercept) // 2 0
func Fit(points PointSet) (FitResult, error) {
	if len(points) == 0 {
		return FitResult{}, fmt.Errorf("fit: %w", errs.ErrEmptyPointSet)
	}

	s := Summarize(points)
	n := float64(s.N)

	slope := 0.0
	if denom := s.Denominator(); denom != 0 {
		slope = (n*s.Sxy - s.Sx*s.Sy) / denom
	}
	intercept := (s.Sy - slope*s.Sx) / n

	return FitResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared(points, s.Sy/n, slope, intercept),
	}, nil
}

// rSquared returns 1 - ssRes/ssTot, or 0 when ssTot is zero.
func rSquared(points PointSet, yMean, slope, intercept float64) float64 {
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for _, p := range points {
		dev := p.Y - yMean
		ssTot += dev * dev

		res := p.Y - (slope*p.X + intercept)
		ssRes += res * res
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - ssRes/ssTot
}
