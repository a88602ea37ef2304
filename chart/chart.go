package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/regression"
)

// Chart is one fitted series laid out and ready to encode.
type Chart struct {
	Series string
	Config *Config
	Layout Layout
	Fit    regression.FitResult
	Plot   *plot.Plot

	rows   []dataset.Row
	points regression.PointSet
}

// Anchor places the tooltip of one row over the rendered chart.
type Anchor struct {
	ID      string
	X       float64 // points from the left edge
	Y       float64 // points from the top edge
	Left    float64 // X as a percentage of the chart width
	Top     float64 // Y as a percentage of the chart height
	Tooltip string
}

// Build fits series against the configured y column and assembles its plot.
func Build(ds *dataset.Dataset, series string, opts ...Option) (*Chart, error) {
	cfg, err := newConfig(series, opts...)
	if err != nil {
		return nil, err
	}

	points, err := ds.Series(series, cfg.YColumn)
	if err != nil {
		return nil, err
	}

	fit, err := regression.Fit(points)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", series, err)
	}

	p, err := NewPlot(points, fit, cfg)
	if err != nil {
		return nil, err
	}

	return &Chart{
		Series: series,
		Config: cfg,
		Layout: NewLayout(cfg.Width, cfg.Height),
		Fit:    fit,
		Plot:   p,
		rows:   ds.Rows,
		points: points,
	}, nil
}

// WriteTo encodes the chart in the configured format.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	cw, area, err := c.canvas(c.Config.Format)
	if err != nil {
		return 0, err
	}
	c.Plot.Draw(area)

	return cw.WriteTo(w)
}

// Frame returns the scales from the unit data square to outer canvas points,
// measured from the top-left corner.
func (c *Chart) Frame() (Frame, error) {
	_, area, err := c.canvas(DefaultFormat)
	if err != nil {
		return Frame{}, err
	}

	r := c.Plot.DataCanvas(area).Rectangle
	w, h := c.Layout.Size()

	return Frame{
		Width:  w,
		Height: h,
		X:      NewLinearScale(0, 1, r.Min.X.Points(), r.Max.X.Points()),
		Y:      NewLinearScale(0, 1, h-r.Min.Y.Points(), h-r.Max.Y.Points()),
	}, nil
}

// Anchors returns one tooltip anchor per dataset row, in row order.
func (c *Chart) Anchors() ([]Anchor, error) {
	f, err := c.Frame()
	if err != nil {
		return nil, err
	}

	anchors := make([]Anchor, len(c.rows))
	for i, row := range c.rows {
		x, y := f.PointPosition(c.points[i].X, c.points[i].Y)
		anchors[i] = Anchor{
			ID:      row.ID,
			X:       x,
			Y:       y,
			Left:    x / f.Width * 100,
			Top:     y / f.Height * 100,
			Tooltip: Tooltip(row, c.Series, c.Config.YColumn),
		}
	}

	return anchors, nil
}

// canvas creates a full-size canvas and returns it with the area inside the
// layout margins.
func (c *Chart) canvas(format string) (vg.CanvasWriterTo, draw.Canvas, error) {
	w, h := c.Layout.Size()
	cw, err := draw.NewFormattedCanvas(vg.Points(w), vg.Points(h), format)
	if err != nil {
		return nil, draw.Canvas{}, fmt.Errorf("chart %s: %w", c.Series, err)
	}

	return cw, c.Layout.Area(draw.New(cw)), nil
}
