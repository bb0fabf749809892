package floodfill

// span is a Heckbert stack entry: cells x1..x2 of row y, to be continued
// in direction dy.
type span struct {
	x1, x2, y, dy int
}

// fillHeckbert implements the seed fill from Paul S. Heckbert,
// "A Seed Fill Algorithm", Graphics Gems (1990), pp. 275-277.
//
// Each stack entry names a span of a row whose parent row (y-dy) has been
// painted. Popping it paints the runs of row y that touch the span, continues
// each run in direction dy and sends the parts that overhang the parent
// back in direction -dy.
func fillHeckbert(r *region, x, y int, yield func(Step) bool) bool {
	if !r.fillable(x, y) {
		return true
	}

	h := r.grid.height
	stack := []span{{x, x, y, 1}, {x, x, y - 1, -1}}
	push := func(x1, x2, y, dy int) {
		if y >= 0 && y < h {
			stack = append(stack, span{x1, x2, y, dy})
		}
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x1, x2, y, dy := s.x1, s.x2, s.y, s.dy

		x := x1
		if r.fillable(x, y) {
			for r.fillable(x-1, y) {
				if !yield(r.paint(x-1, y)) {
					return false
				}
				x--
			}
			if x < x1 {
				push(x, x1-1, y-dy, -dy)
			}
		}
		for x1 <= x2 {
			for r.fillable(x1, y) {
				if !yield(r.paint(x1, y)) {
					return false
				}
				x1++
			}
			if x1 > x {
				push(x, x1-1, y+dy, dy)
			}
			if x1-1 > x2 {
				push(x2+1, x1-1, y-dy, -dy)
			}
			x1++
			for x1 < x2 && !r.fillable(x1, y) {
				x1++
			}
			x = x1
		}
	}
	return true
}
