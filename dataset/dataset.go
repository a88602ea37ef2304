package dataset

import (
	"fmt"
	"slices"

	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/internal/hash"
	"github.com/arloliu/fitview/regression"
)

// Row is a single record: an ID plus one value per dataset column.
type Row struct {
	ID     string             `yaml:"id" json:"id"`
	Values map[string]float64 `yaml:"values" json:"values"`
}

// Dataset is a named table of rows sharing the same columns.
//
// A Dataset returned by New, Load or Decode is validated and should be
// treated as read-only.
type Dataset struct {
	Name    string   `yaml:"name" json:"name"`
	Columns []string `yaml:"columns" json:"columns"`
	Rows    []Row    `yaml:"rows" json:"rows"`
}

// New validates and returns a dataset.
//
// Returns an error if a column name is empty or repeated, a row ID is empty or
// repeated, a row lacks a value for some column, or a row carries a value for
// a column that is not declared.
func New(name string, columns []string, rows []Row) (*Dataset, error) {
	ds := &Dataset{Name: name, Columns: columns, Rows: rows}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// Validate checks the invariants described on New.
func (d *Dataset) Validate() error {
	seenCols := make(map[string]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		if c == "" {
			return fmt.Errorf("%w: empty column name", errs.ErrUnknownColumn)
		}
		if _, dup := seenCols[c]; dup {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, c)
		}
		seenCols[c] = struct{}{}
	}

	seenRows := make(map[string]struct{}, len(d.Rows))
	for i, r := range d.Rows {
		if r.ID == "" {
			return fmt.Errorf("%w: row %d has no id", errs.ErrInvalidRowID, i)
		}
		if _, dup := seenRows[r.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", errs.ErrInvalidRowID, r.ID)
		}
		seenRows[r.ID] = struct{}{}

		for _, c := range d.Columns {
			if _, ok := r.Values[c]; !ok {
				return fmt.Errorf("%w: row %q has no %q value", errs.ErrMissingValue, r.ID, c)
			}
		}
		for c := range r.Values {
			if _, ok := seenCols[c]; !ok {
				return fmt.Errorf("%w: row %q has undeclared column %q", errs.ErrUnknownColumn, r.ID, c)
			}
		}
	}

	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset declares the column.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Columns, name)
}

// Column returns the values of a column in row order.
func (d *Dataset) Column(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	values := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		values[i] = r.Values[name]
	}

	return values, nil
}

// Series pairs column xCol with column yCol in row order.
func (d *Dataset) Series(xCol, yCol string) (regression.PointSet, error) {
	xs, err := d.Column(xCol)
	if err != nil {
		return nil, err
	}
	ys, err := d.Column(yCol)
	if err != nil {
		return nil, err
	}

	return regression.FromSlices(xs, ys), nil
}

// Fit pairs two columns and fits a least-squares line through them.
func (d *Dataset) Fit(xCol, yCol string) (regression.FitResult, error) {
	points, err := d.Series(xCol, yCol)
	if err != nil {
		return regression.FitResult{}, err
	}

	fit, err := regression.Fit(points)
	if err != nil {
		return regression.FitResult{}, fmt.Errorf("dataset %q series %s/%s: %w", d.Name, xCol, yCol, err)
	}

	return fit, nil
}

// SeriesID returns the stable 64-bit identifier of a column of this dataset.
func (d *Dataset) SeriesID(column string) uint64 {
	return hash.SeriesID(d.Name, column)
}

// Row returns the row with the given ID.
func (d *Dataset) Row(id string) (Row, bool) {
	for _, r := range d.Rows {
		if r.ID == id {
			return r, true
		}
	}

	return Row{}, false
}
