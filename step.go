package floodfill

import (
	"image"
	"iter"
)

// Step is one atomic paint mutation: cell (X, Y) changed from Old to New.
// Steps are the unit of animation and of suspension.
type Step struct {
	X, Y int
	Old  RGBA
	New  RGBA
}

// Point returns the cell coordinate of the step.
func (s Step) Point() image.Point {
	return image.Pt(s.X, s.Y)
}

// Record drains seq and returns its steps in order.
func Record(seq iter.Seq[Step]) []Step {
	var steps []Step
	for s := range seq {
		steps = append(steps, s)
	}
	return steps
}

// Replay writes the New color of every step into g, in order.
// Steps outside the grid are skipped.
func Replay(g *Grid, steps []Step) {
	for _, s := range steps {
		g.Set(s.X, s.Y, s.New)
	}
}

// Bounds returns the smallest rectangle containing every step.
func Bounds(steps []Step) image.Rectangle {
	var r image.Rectangle
	for _, s := range steps {
		r = r.Union(image.Rect(s.X, s.Y, s.X+1, s.Y+1))
	}
	return r
}
