package floodfill

import "image"

// fillSpan is the simple scanline fill. For every seed it paints the
// horizontal span through the seed, then pushes one seed per run of
// fillable cells in the rows directly above and below the span.
func fillSpan(r *region, x, y int, yield func(Step) bool) bool {
	if !r.fillable(x, y) {
		return true
	}

	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p.X, p.Y

		lx := x
		for r.fillable(lx-1, y) {
			if !yield(r.paint(lx-1, y)) {
				return false
			}
			lx--
		}
		for r.fillable(x, y) {
			if !yield(r.paint(x, y)) {
				return false
			}
			x++
		}

		// The span is [lx, x).
		stack = r.scanRuns(stack, lx, x-1, y+1)
		stack = r.scanRuns(stack, lx, x-1, y-1)
	}
	return true
}

// scanRuns appends the leftmost cell of every maximal run of fillable cells
// in row y between x1 and x2 inclusive.
func (r *region) scanRuns(stack []image.Point, x1, x2, y int) []image.Point {
	if y < 0 || y >= r.grid.height {
		return stack
	}
	inRun := false
	for x := x1; x <= x2; x++ {
		switch {
		case !r.fillable(x, y):
			inRun = false
		case !inRun:
			stack = append(stack, image.Point{X: x, Y: y})
			inRun = true
		}
	}
	return stack
}
