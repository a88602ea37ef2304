// Package errs defines the sentinel errors shared by fitview packages.
//
// Callers should match them with errors.Is, since most call sites wrap the
// sentinel with additional context.
package errs

import "errors"

// Regression errors.
var (
	// ErrEmptyPointSet is returned when a fit is requested over zero points.
	ErrEmptyPointSet = errors.New("empty point set")
	// ErrInvalidCoefficients is returned when an estimator receives the wrong number of coefficients.
	ErrInvalidCoefficients = errors.New("invalid coefficients")
	// ErrUnknownModel is returned for an unsupported estimator name.
	ErrUnknownModel = errors.New("unknown model type")
)

// Dataset errors.
var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrMissingValue     = errors.New("missing value")
	ErrInvalidRowID     = errors.New("invalid row id")
	ErrUnsupportedInput = errors.New("unsupported input format")
)

// Snapshot codec errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrTooManyRows        = errors.New("too many rows")
	ErrTooManyColumns     = errors.New("too many columns")
	ErrNameTooLong        = errors.New("name too long")
)

// Chart errors.
var (
	ErrInvalidSize  = errors.New("invalid chart size")
	ErrInvalidColor = errors.New("invalid color")
)

// Tab errors.
var (
	ErrNoTabs       = errors.New("no tabs")
	ErrNoPanels     = errors.New("no panels")
	ErrDuplicateTab = errors.New("duplicate tab")
	ErrUnknownTab   = errors.New("unknown tab")
)
