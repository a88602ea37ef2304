package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/fitview/chart"
	"github.com/arloliu/fitview/format"
	"github.com/arloliu/fitview/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "chart.width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}

	return sb.String()
}

// ValidLogFormats returns the list of valid logging formats
func ValidLogFormats() []string {
	return []string{logging.FormatJSON, logging.FormatText}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateChart()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validatePack()...)

	return errors
}

func (c *Config) validateChart() []ValidationError {
	var errors []ValidationError

	if c.Chart.Width <= 0 {
		errors = append(errors, ValidationError{
			Field:   "chart.width",
			Value:   c.Chart.Width,
			Message: "must be positive",
		})
	}
	if c.Chart.Height <= 0 {
		errors = append(errors, ValidationError{
			Field:   "chart.height",
			Value:   c.Chart.Height,
			Message: "must be positive",
		})
	}

	series := make([]string, 0, len(c.Chart.Colors))
	for s := range c.Chart.Colors {
		series = append(series, s)
	}
	slices.Sort(series)
	for _, s := range series {
		if _, err := chart.ParseHexColor(c.Chart.Colors[s]); err != nil {
			errors = append(errors, ValidationError{
				Field:   "chart.colors." + s,
				Value:   c.Chart.Colors[s],
				Message: "must be a hex color like #2563eb",
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !logging.ValidLevel(c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of debug, info, warn, error",
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of %v", ValidLogFormats()),
		})
	}

	return errors
}

func (c *Config) validatePack() []ValidationError {
	if _, err := format.ParseCompression(c.Pack.Compression); err != nil {
		return []ValidationError{{
			Field:   "pack.compression",
			Value:   c.Pack.Compression,
			Message: "must be one of none, zstd, s2, lz4",
		}}
	}

	return nil
}
