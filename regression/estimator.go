package regression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/fitview/errs"
)

// ModelType represents the type of a fitted model.
type ModelType int

const (
	// ModelTypeLinear represents the linear model: y = slope*x + intercept
	ModelTypeLinear ModelType = iota
	// ModelTypeConstant represents the mean-only baseline: y = c
	ModelTypeConstant
)

var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:   "linear",
	ModelTypeConstant: "constant",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// ModelTypeFromString returns the ModelType for a given name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	lower := strings.ToLower(name)
	for mt, n := range modelTypeNames {
		if n == lower {
			return mt
		}
	}

	return ModelType(-1)
}

// Estimator predicts y for a given x from a fixed set of coefficients.
type Estimator interface {
	// Estimate calculates y for the given x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients replaces the coefficients in place.
	// The number of coefficients must match the model:
	// - 2 coefficients: linear [slope, intercept]
	// - 1 coefficient: constant [c]
	SetCoefficients(coeffs []float64) error
}

// LinearEstimator implements y = slope*x + intercept.
type LinearEstimator struct {
	slope, intercept float64
}

var _ Estimator = (*LinearEstimator)(nil)

// NewLinearEstimator creates a linear estimator with the given coefficients.
func NewLinearEstimator(slope, intercept float64) *LinearEstimator {
	return &LinearEstimator{slope: slope, intercept: intercept}
}

// Estimate returns slope*x + intercept.
func (l *LinearEstimator) Estimate(x float64) float64 {
	return l.slope*x + l.intercept
}

// Type returns ModelTypeLinear.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns [slope, intercept].
func (l *LinearEstimator) Coefficients() []float64 {
	return []float64{l.slope, l.intercept}
}

// SetCoefficients expects exactly [slope, intercept].
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%w: linear model expects exactly 2 coefficients, got %d",
			errs.ErrInvalidCoefficients, len(coeffs))
	}
	l.slope = coeffs[0]
	l.intercept = coeffs[1]

	return nil
}

// ConstantEstimator always predicts the same value. It is the baseline an
// R² of 0 is measured against.
type ConstantEstimator struct {
	c float64
}

var _ Estimator = (*ConstantEstimator)(nil)

// NewConstantEstimator creates a constant estimator.
func NewConstantEstimator(c float64) *ConstantEstimator {
	return &ConstantEstimator{c: c}
}

// Estimate returns the constant regardless of x.
func (c *ConstantEstimator) Estimate(float64) float64 {
	return c.c
}

// Type returns ModelTypeConstant.
func (c *ConstantEstimator) Type() ModelType {
	return ModelTypeConstant
}

// Coefficients returns [c].
func (c *ConstantEstimator) Coefficients() []float64 {
	return []float64{c.c}
}

// SetCoefficients expects exactly [c].
func (c *ConstantEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 1 {
		return fmt.Errorf("%w: constant model expects exactly 1 coefficient, got %d",
			errs.ErrInvalidCoefficients, len(coeffs))
	}
	c.c = coeffs[0]

	return nil
}

// NewEstimator creates an estimator by model name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive), "linear" or "constant"
//   - coeffs: The model coefficients, [slope, intercept] or [c]
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: errs.ErrUnknownModel or errs.ErrInvalidCoefficients
//
// Example:
//
//	est, err := NewEstimator("linear", []float64{0.77, -0.12})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := est.Estimate(0.5)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	var est Estimator
	switch ModelTypeFromString(name) {
	case ModelTypeLinear:
		est = NewLinearEstimator(0, 0)
	case ModelTypeConstant:
		est = NewConstantEstimator(0)
	default:
		supported := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("%w: %s. Supported types: %s",
			errs.ErrUnknownModel, name, strings.Join(supported, ", "))
	}

	if err := est.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return est, nil
}
