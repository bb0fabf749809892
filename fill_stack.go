package floodfill

import "image"

// fillRecursive reproduces the visiting order of
//
//	fill(x, y): if fillable(x, y) { paint(x, y); fill(x+1, y); fill(x-1, y); fill(x, y+1); fill(x, y-1) }
//
// with an explicit stack. Cells are checked when popped, not when pushed,
// and neighbors are pushed in reverse so that +x comes off first.
func fillRecursive(r *region, x, y int, yield func(Step) bool) bool {
	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !r.fillable(p.X, p.Y) {
			continue
		}
		if !yield(r.paint(p.X, p.Y)) {
			return false
		}
		stack = append(stack,
			image.Point{X: p.X, Y: p.Y - 1},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X + 1, Y: p.Y},
		)
	}
	return true
}

// fillDFS paints the seed, then repeatedly pops a painted cell and paints
// and pushes each of its fillable neighbors.
func fillDFS(r *region, x, y int, yield func(Step) bool) bool {
	if !r.fillable(x, y) {
		return true
	}
	if !yield(r.paint(x, y)) {
		return false
	}

	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range neighbors(p) {
			if !r.fillable(n.X, n.Y) {
				continue
			}
			if !yield(r.paint(n.X, n.Y)) {
				return false
			}
			stack = append(stack, n)
		}
	}
	return true
}

// fillBFS is fillDFS with a FIFO queue.
func fillBFS(r *region, x, y int, yield func(Step) bool) bool {
	if !r.fillable(x, y) {
		return true
	}
	if !yield(r.paint(x, y)) {
		return false
	}

	queue := []image.Point{{X: x, Y: y}}
	for head := 0; head < len(queue); head++ {
		p := queue[head]

		for _, n := range neighbors(p) {
			if !r.fillable(n.X, n.Y) {
				continue
			}
			if !yield(r.paint(n.X, n.Y)) {
				return false
			}
			queue = append(queue, n)
		}

		// Drop the consumed prefix once it dominates the slice.
		if head > 1024 && head > len(queue)/2 {
			queue = append(queue[:0], queue[head+1:]...)
			head = -1
		}
	}
	return true
}
