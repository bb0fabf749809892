package floodfill

import "fmt"

// Occupancy is a Boolean grid used by the run-length fill.
// A set cell is either an obstacle or already filled; a clear cell is
// fillable. Cell (x, y) is stored at index x + y*width.
type Occupancy struct {
	width  int
	height int
	cells  []bool
}

// NewOccupancy creates a clear occupancy grid of the given dimensions.
func NewOccupancy(width, height int) *Occupancy {
	width, height = max(width, 0), max(height, 0)
	return &Occupancy{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// OccupancyFromGrid thresholds g against a fixed reference color: a cell is
// clear when metric.Dissimilarity(cell, ref) <= threshold and set otherwise.
func OccupancyFromGrid(g *Grid, ref RGBA, metric Metric, threshold float64) *Occupancy {
	cmp := metric.Comparator()
	o := NewOccupancy(g.width, g.height)
	for i, c := range g.cells {
		o.cells[i] = cmp(c, ref) > threshold
	}
	return o
}

// Width returns the width of the occupancy grid.
func (o *Occupancy) Width() int { return o.width }

// Height returns the height of the occupancy grid.
func (o *Occupancy) Height() int { return o.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (o *Occupancy) InBounds(x, y int) bool {
	return x >= 0 && x < o.width && y >= 0 && y < o.height
}

// Get reports whether cell (x, y) is set. Out-of-bounds cells are set.
func (o *Occupancy) Get(x, y int) bool {
	if !o.InBounds(x, y) {
		return true
	}
	return o.cells[x+y*o.width]
}

// Set marks or clears cell (x, y). Out-of-bounds writes are ignored.
func (o *Occupancy) Set(x, y int, v bool) {
	if !o.InBounds(x, y) {
		return
	}
	o.cells[x+y*o.width] = v
}

// Count returns the number of set cells.
func (o *Occupancy) Count() int {
	n := 0
	for _, v := range o.cells {
		if v {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the occupancy grid.
func (o *Occupancy) Clone() *Occupancy {
	c := &Occupancy{width: o.width, height: o.height, cells: make([]bool, len(o.cells))}
	copy(c.cells, o.cells)
	return c
}

// matches returns ErrDimensionMismatch unless o and g have the same size.
func (o *Occupancy) matches(g *Grid) error {
	if o.width != g.width || o.height != g.height {
		return fmt.Errorf("%w: occupancy %dx%d, grid %dx%d",
			ErrDimensionMismatch, o.width, o.height, g.width, g.height)
	}
	return nil
}

// Paint converts a finished run-length fill back to colors: every cell that
// is set in o but was clear in initial is painted with fill in g. Other cells
// keep their color. It returns the number of painted cells.
func (o *Occupancy) Paint(g *Grid, initial *Occupancy, fill RGBA) (int, error) {
	if err := o.matches(g); err != nil {
		return 0, err
	}
	if initial.width != o.width || initial.height != o.height {
		return 0, fmt.Errorf("%w: occupancy %dx%d, initial %dx%d",
			ErrDimensionMismatch, o.width, o.height, initial.width, initial.height)
	}
	n := 0
	for i, v := range o.cells {
		if v && !initial.cells[i] {
			g.cells[i] = fill
			n++
		}
	}
	return n, nil
}
