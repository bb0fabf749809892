package floodfill

import (
	"image"
	"iter"
)

// runLength fills rectangular blocks of clear cells in an occupancy grid.
//
// The scan starts from the upper-left corner of a block and proceeds down
// row by row, tracking the length of the previous row. It only recurses
// where a row gets narrower (look right along the shortened part) or wider
// (look up above the new part), so large rectangular areas are covered with
// about one probe per cell.
type runLength struct {
	occ    *Occupancy
	w, h   int
	probes *int
	mark   func(x, y int) bool
}

// isSet reads cell (x, y), which the caller guarantees is in bounds.
func (f *runLength) isSet(x, y int) bool {
	*f.probes++
	return f.occ.cells[x+y*f.w]
}

// set marks cell (x, y) and reports it. It returns false to stop the fill.
func (f *runLength) set(x, y int) bool {
	f.occ.cells[x+y*f.w] = true
	return f.mark(x, y)
}

// fill moves from the clear cell (x, y) as far up and left as possible,
// preferring up over left, and scans the block found there.
func (f *runLength) fill(x, y int) bool {
	for {
		ox, oy := x, y
		for y != 0 && !f.isSet(x, y-1) {
			y--
		}
		for x != 0 && !f.isSet(x-1, y) {
			x--
		}
		if x == ox && y == oy {
			break
		}
	}
	return f.core(x, y)
}

// core scans down and right from (x, y). On entry (x, y) is clear and the
// cells above and to the left of it are set or outside the grid.
func (f *runLength) core(x, y int) bool {
	lastRowLength := 0
	for {
		rowLength, sx := 0, x

		if lastRowLength != 0 && f.isSet(x, y) {
			// The row starts further right than the previous one:
			// shrink the block instead of recursing.
			for {
				lastRowLength--
				if lastRowLength == 0 {
					return true
				}
				x++
				if !f.isSet(x, y) {
					break
				}
			}
			sx = x
		} else {
			// The row may start further left than the previous one: grow
			// the block leftwards, handling clear cells above the new part.
			for x != 0 && !f.isSet(x-1, y) {
				x--
				if !f.set(x, y) {
					return false
				}
				rowLength++
				lastRowLength++
				if y != 0 && !f.isSet(x, y-1) {
					if !f.fill(x, y-1) {
						return false
					}
				}
			}
		}

		// The previous row from x to x+lastRowLength is already filled.
		for sx < f.w && !f.isSet(sx, y) {
			if !f.set(sx, y) {
				return false
			}
			rowLength++
			sx++
		}

		if rowLength < lastRowLength {
			// Shorter than the previous row: clear cells further right in
			// this row are connected through the row above.
			for end := x + lastRowLength; ; {
				sx++
				if sx >= end {
					break
				}
				if !f.isSet(sx, y) {
					if !f.core(sx, y) {
						return false
					}
				}
			}
		} else if rowLength > lastRowLength && y != 0 {
			// Longer than the previous row: look above the new part.
			for ux := x + lastRowLength; ; {
				ux++
				if ux >= sx {
					break
				}
				if !f.isSet(ux, y-1) {
					if !f.fill(ux, y-1) {
						return false
					}
				}
			}
		}

		lastRowLength = rowLength
		y++
		if lastRowLength == 0 || y >= f.h {
			return true
		}
	}
}

// FillOccupancy runs the run-length fill over occ from seed, marking clear
// cells set. It yields every newly marked cell. Nothing happens if the seed
// is out of bounds or already set. occ is mutated as the sequence is pulled;
// stopping the iteration leaves the cells marked so far set.
func FillOccupancy(occ *Occupancy, seed image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		var probes int
		runLengthFill(occ, seed.X, seed.Y, &probes, func(x, y int) bool {
			return yield(image.Point{X: x, Y: y})
		})
	}
}

// runLengthFill starts the run-length fill at (x, y) if that cell is clear.
func runLengthFill(occ *Occupancy, x, y int, probes *int, mark func(x, y int) bool) bool {
	if !occ.InBounds(x, y) {
		return true
	}
	f := &runLength{occ: occ, w: occ.width, h: occ.height, probes: probes, mark: mark}
	if f.isSet(x, y) {
		return true
	}
	return f.fill(x, y)
}
