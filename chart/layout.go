package chart

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default chart geometry.
const (
	DefaultWidth  = 640.0
	DefaultHeight = 352.0
	// MinInner is the smallest inner width or height of the plotting area.
	MinInner = 120.0
)

// Margins is the blank padding between the canvas edge and the plot.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins is the padding used by NewLayout.
var DefaultMargins = Margins{Top: 16, Right: 20, Bottom: 48, Left: 56}

// Layout is the outer chart size plus its margins.
type Layout struct {
	Width   float64
	Height  float64
	Margins Margins
}

// NewLayout returns a layout with DefaultMargins.
// Non-positive dimensions fall back to DefaultWidth and DefaultHeight.
func NewLayout(width, height float64) Layout {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return Layout{Width: width, Height: height, Margins: DefaultMargins}
}

// InnerWidth returns the plotting area width, floored at MinInner.
func (l Layout) InnerWidth() float64 {
	return max(MinInner, l.Width-l.Margins.Left-l.Margins.Right)
}

// InnerHeight returns the plotting area height, floored at MinInner.
func (l Layout) InnerHeight() float64 {
	return max(MinInner, l.Height-l.Margins.Top-l.Margins.Bottom)
}

// Size returns the outer canvas size, grown where the inner area was floored.
func (l Layout) Size() (width, height float64) {
	return l.Margins.Left + l.InnerWidth() + l.Margins.Right,
		l.Margins.Top + l.InnerHeight() + l.Margins.Bottom
}

// Area crops a full-size canvas to the region inside the margins. The plot,
// including its axes and labels, is drawn there.
func (l Layout) Area(c draw.Canvas) draw.Canvas {
	m := l.Margins

	return draw.Crop(c, vg.Points(m.Left), -vg.Points(m.Right), vg.Points(m.Bottom), -vg.Points(m.Top))
}

// Frame locates the unit data square on the outer canvas, in points from the
// top-left corner.
type Frame struct {
	Width  float64
	Height float64
	X      LinearScale
	Y      LinearScale
}

// PointPosition returns where the data point (x, y) is drawn.
func (f Frame) PointPosition(x, y float64) (float64, float64) {
	return f.X.Map(x), f.Y.Map(y)
}

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale creates a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value to its range value. Values outside the domain
// are extrapolated. A collapsed domain maps everything to the range start.
func (s LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}

	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}
