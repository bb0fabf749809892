package floodfill

import "image"

// Stats describes the progress of a fill.
type Stats struct {
	// Target is the reference color captured from the seed cell.
	Target RGBA

	// Painted is the number of cells written so far.
	Painted int

	// Probes is the number of in-bounds fillability checks so far.
	// It measures how many cells the traversal touched.
	Probes int

	// Bounds is the bounding box of the painted cells.
	Bounds image.Rectangle
}

// region holds the state shared by the color-grid algorithms during one fill.
type region struct {
	grid      *Grid
	fill      RGBA
	threshold float64
	cmp       Comparator

	// visited marks painted cells. It is nil when visitation is inferred
	// from the cell color equalling the fill color.
	visited []bool

	stats *Stats
}

// newRegion resets stats and returns the state for one fill of g.
func newRegion(g *Grid, req Request, target RGBA, colorIdentity bool, stats *Stats) *region {
	*stats = Stats{Target: target}
	r := &region{
		grid:      g,
		fill:      req.Fill,
		threshold: req.Threshold,
		cmp:       req.Metric.Comparator(),
		stats:     stats,
	}
	if !colorIdentity {
		r.visited = make([]bool, g.Len())
	}
	return r
}

// similar reports whether color c is within the threshold of the target.
func (r *region) similar(c RGBA) bool {
	return r.cmp(c, r.stats.Target) <= r.threshold
}

// fillable reports whether (x, y) is in bounds, not yet visited and similar
// to the target. Out-of-bounds coordinates are not counted as probes.
func (r *region) fillable(x, y int) bool {
	if !r.grid.InBounds(x, y) {
		return false
	}
	r.stats.Probes++
	i := x + y*r.grid.width
	c := r.grid.cells[i]
	if r.visited != nil {
		if r.visited[i] {
			return false
		}
	} else if c.Equal(r.fill) {
		return false
	}
	return r.similar(c)
}

// paint writes the fill color into (x, y), marks it visited and returns
// the step. The caller guarantees (x, y) is in bounds.
func (r *region) paint(x, y int) Step {
	i := x + y*r.grid.width
	s := Step{X: x, Y: y, Old: r.grid.cells[i], New: r.fill}
	r.grid.cells[i] = r.fill
	if r.visited != nil {
		r.visited[i] = true
	}
	r.stats.Painted++
	r.stats.Bounds = r.stats.Bounds.Union(image.Rect(x, y, x+1, y+1))
	return s
}

// neighbors returns the four 4-connected neighbors of p in the order
// left, right, down (y+1), up (y-1). Some may be out of bounds.
func neighbors(p image.Point) [4]image.Point {
	return [4]image.Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}
