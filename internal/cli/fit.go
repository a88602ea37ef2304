package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/regression"
)

// FitOptions holds flags for the fit command.
type FitOptions struct {
	Data string
	X    []string
	Y    string
}

// SeriesFit is the fit of one x column against the y column.
type SeriesFit struct {
	Series    string  `json:"series"`
	SeriesID  string  `json:"series_id"`
	Points    int     `json:"points"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	RMSE      float64 `json:"rmse"`
	Formula   string  `json:"formula"`
	Label     string  `json:"label"`

	// Model and Coefficients round-trip through regression.NewEstimator.
	Model        string    `json:"model"`
	Coefficients []float64 `json:"coefficients"`
}

// FitReport is the result of the fit command.
type FitReport struct {
	Dataset string      `json:"dataset"`
	Y       string      `json:"y"`
	Fits    []SeriesFit `json:"fits"`
}

// RenderText writes one block per series.
func (r FitReport) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "dataset %s, y = %s\n", r.Dataset, r.Y); err != nil {
		return err
	}

	for _, f := range r.Fits {
		_, err := fmt.Fprintf(w, "\n[%s]\n"+
			"  points:    %d\n"+
			"  slope:     %.6f\n"+
			"  intercept: %.6f\n"+
			"  r²:        %.6f\n"+
			"  rmse:      %.6f\n"+
			"  formula:   %s\n"+
			"  label:     %s\n",
			f.Series, f.Points, f.Slope, f.Intercept, f.RSquared, f.RMSE, f.Formula, f.Label)
		if err != nil {
			return err
		}
	}

	return nil
}

// NewFitCommand creates the fit command.
func NewFitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FitOptions{}

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit least-squares lines and report slope, intercept and R²",
		Long: `Fit an ordinary-least-squares line for each x column against the y column.

Without --x every column except the y column is fitted, in dataset order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFit(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "dataset file (.yaml, .json or .csv)")
	cmd.Flags().StringSliceVarP(&opts.X, "x", "x", nil, "x column(s) to fit")
	cmd.Flags().StringVarP(&opts.Y, "y", "y", dataset.ColumnBusyness, "y column")

	return cmd
}

func runFit(rootOpts *RootOptions, opts *FitOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.logger(cmd)

	ds, err := loadDataset(opts.Data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load dataset", err)
	}

	report, err := fitDataset(ds, opts.X, opts.Y)
	if err != nil {
		if errors.Is(err, errs.ErrEmptyPointSet) {
			return formatter.Fail(ExitFailure, ErrCodeFitFailed, "cannot fit an empty dataset", err)
		}

		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid series", err)
	}

	for _, f := range report.Fits {
		log.WithSeries(f.Series).Debug("fitted series",
			"slope", f.Slope, "intercept", f.Intercept, "r_squared", f.RSquared)
	}

	return formatter.Success(report)
}

// fitDataset fits every requested x column against y. An empty xs selects
// all columns except y.
func fitDataset(ds *dataset.Dataset, xs []string, y string) (FitReport, error) {
	if !ds.HasColumn(y) {
		return FitReport{}, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, y)
	}

	if len(xs) == 0 {
		xs = slices.DeleteFunc(slices.Clone(ds.Columns), func(c string) bool { return c == y })
	}

	report := FitReport{Dataset: ds.Name, Y: y, Fits: make([]SeriesFit, 0, len(xs))}
	for _, x := range xs {
		points, err := ds.Series(x, y)
		if err != nil {
			return FitReport{}, err
		}

		fit, err := regression.Fit(points)
		if err != nil {
			return FitReport{}, fmt.Errorf("series %q: %w", x, err)
		}

		est := fit.Estimator()
		report.Fits = append(report.Fits, SeriesFit{
			Series:    x,
			SeriesID:  fmt.Sprintf("%016x", ds.SeriesID(x)),
			Points:    len(points),
			Slope:     fit.Slope,
			Intercept: fit.Intercept,
			RSquared:  fit.RSquared,
			RMSE:      regression.RMSE(points, fit),
			Formula:   fit.Formula(),
			Label:     fit.Label(),

			Model:        est.Type().String(),
			Coefficients: est.Coefficients(),
		})
	}

	return report, nil
}
