// Package floodfill provides a flood-fill engine for color grids.
//
// # Overview
//
// Given a Grid of colors, a seed cell, a color Metric and a threshold, the
// engine finds the 4-connected region of cells similar to the seed color and
// repaints it with a fill color. Six interchangeable algorithms produce the
// same region with different traversal orders:
//
//   - AlgorithmRecursive: naive recursive descent, run on an explicit stack
//   - AlgorithmDFS, AlgorithmBFS: explicit stack and queue
//   - AlgorithmSpan: simple scanline span fill
//   - AlgorithmHeckbert: Heckbert's span-and-fill seed fill
//   - AlgorithmRunLength: rectangular run-length fill over an Occupancy grid
//
// # Quick Start
//
//	import "github.com/gogpu/floodfill"
//
//	g := floodfill.NewGridFromImage(img)
//	req, err := floodfill.NewRequest(image.Pt(10, 10), floodfill.Red, 0.1,
//	    floodfill.MetricEuclidean, floodfill.AlgorithmHeckbert)
//	if err != nil {
//	    return err
//	}
//	res, err := floodfill.NewEngine().Fill(ctx, g, req)
//
// # Steps and Pacing
//
// Every painted cell is a Step. Engine.Steps exposes the fill as a lazy
// iter.Seq[Step]; nothing is painted until the caller pulls. Engine.Start
// wraps the same sequence in a Run for explicit Next calls. Engine.Fill
// drains the sequence through a Scheduler: Immediate never waits, Ticker and
// Manual release one step per tick or per Advance call, and Poll samples a
// caller-supplied gate. Canceling the context stops a fill between steps and
// leaves the partially filled grid as it is.
//
// # Similarity
//
// A cell is fillable when it lies inside the grid, has not been painted by
// the current fill, and Metric.Dissimilarity(cell, target) <= threshold,
// where target is the seed color captured when the fill starts. The luma
// metrics return a signed difference: cells darker than the target always
// pass.
//
// # Coordinate System
//
// Cell (0, 0) is the top-left cell; x increases right and y increases down.
// Cell (x, y) is stored at index x + y*width.
package floodfill
