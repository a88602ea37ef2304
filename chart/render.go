package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/internal/options"
	"github.com/arloliu/fitview/regression"
)

// Drawing constants.
const (
	PointRadius   = 4.5
	FitLineWidth  = 2.0
	LabelInset    = 8.0
	XAxisLabel    = "Sentiment"
	DefaultFormat = "svg"
)

// Config holds the rendering parameters of a single chart.
type Config struct {
	Width   float64
	Height  float64
	Color   color.Color
	Title   string
	YColumn string
	Format  string
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithSize sets the outer chart size. Both dimensions must be positive.
func WithSize(width, height float64) Option {
	return options.New(func(cfg *Config) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("%w: %gx%g", errs.ErrInvalidSize, width, height)
		}
		cfg.Width, cfg.Height = width, height

		return nil
	})
}

// WithColor sets the point and fit line color from a hex string.
func WithColor(hex string) Option {
	return options.New(func(cfg *Config) error {
		c, err := ParseHexColor(hex)
		if err != nil {
			return err
		}
		cfg.Color = c

		return nil
	})
}

// WithTitle sets the chart title. An empty title draws none.
func WithTitle(title string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Title = title
	})
}

// WithYColumn plots the series against a column other than busyness. The y
// axis is titled after the column.
func WithYColumn(column string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.YColumn = column
	})
}

// WithFormat selects the output image format ("svg", "png", "pdf", "eps").
func WithFormat(format string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Format = format
	})
}

func newConfig(series string, opts ...Option) (*Config, error) {
	c, err := DefaultPalette().Color(series)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Color:   c,
		YColumn: dataset.ColumnBusyness,
		Format:  DefaultFormat,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Render draws one series of a dataset against its y column and writes the
// image to w.
//
// The chart contains a grid, one circle per row, the least-squares line
// evaluated from x = 0 to x = 1, and the R² label in the top-right corner.
//
// Parameters:
//   - w: Destination of the encoded image
//   - ds: Source dataset
//   - series: Column plotted on the x axis
//   - opts: Optional size, color, title, y column and format
//
// Returns:
//   - error: Unknown column, empty dataset, invalid option or encoding error
func Render(w io.Writer, ds *dataset.Dataset, series string, opts ...Option) error {
	c, err := Build(ds, series, opts...)
	if err != nil {
		return err
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("render %s: %w", series, err)
	}

	return nil
}

// NewPlot assembles the plot for already fitted points without encoding it.
func NewPlot(points regression.PointSet, fit regression.FitResult, cfg *Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = XAxisLabel
	p.Y.Label.Text = ColumnLabel(cfg.YColumn)
	p.X.Tick.Marker = plot.ConstantTicks(PercentTicks(DefaultTickCount))
	p.Y.Tick.Marker = plot.ConstantTicks(PercentTicks(DefaultTickCount))

	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Color = cfg.Color
	scatter.GlyphStyle.Radius = vg.Points(PointRadius)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p0, p1 := fit.Segment(0, 1)
	line, err := plotter.NewLine(regression.PointSet{p0, p1})
	if err != nil {
		return nil, fmt.Errorf("fit line: %w", err)
	}
	line.LineStyle.Color = cfg.Color
	line.LineStyle.Width = vg.Points(FitLineWidth)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 1, Y: 1}},
		Labels: []string{fit.Label()},
	})
	if err != nil {
		return nil, fmt.Errorf("r2 label: %w", err)
	}
	label.TextStyle[0].XAlign = draw.XRight
	label.TextStyle[0].YAlign = draw.YTop
	label.Offset = vg.Point{X: -vg.Points(LabelInset), Y: -vg.Points(LabelInset)}

	p.Add(scatter, line, label)

	// Pin the unit domain after Add, which widens axes to the data range.
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	return p, nil
}
