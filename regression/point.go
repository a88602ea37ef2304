package regression

// Point is an (x, y) pair of real numbers.
type Point struct {
	X float64
	Y float64
}

// PointSet is an ordered sequence of points. Duplicates are allowed.
//
// PointSet satisfies gonum's plotter.XYer interface, so it can be handed to
// a plotter directly.
type PointSet []Point

// Len returns the number of points.
func (ps PointSet) Len() int {
	return len(ps)
}

// XY returns the coordinates of the i-th point.
func (ps PointSet) XY(i int) (x, y float64) {
	return ps[i].X, ps[i].Y
}

// FromSlices pairs xs and ys element by element. The shorter slice determines
// the length of the result.
func FromSlices(xs, ys []float64) PointSet {
	n := min(len(xs), len(ys))
	ps := make(PointSet, n)
	for i := range n {
		ps[i] = Point{X: xs[i], Y: ys[i]}
	}

	return ps
}
