package floodfill

import (
	"fmt"
	"strings"
)

// Algorithm selects a fill traversal strategy. All algorithms paint the same
// region for the same inputs; they differ in step order and in how many
// cells they probe.
type Algorithm uint8

const (
	// AlgorithmRecursive visits cells in the order of a naive recursive
	// descent (+x, -x, +y, -y) using an explicit work list, so call depth
	// stays constant regardless of region size.
	AlgorithmRecursive Algorithm = iota

	// AlgorithmDFS uses an explicit stack of painted cells.
	AlgorithmDFS

	// AlgorithmBFS uses a queue of painted cells.
	AlgorithmBFS

	// AlgorithmSpan paints whole horizontal spans and seeds one cell per
	// run in the rows above and below.
	AlgorithmSpan

	// AlgorithmHeckbert is the span-and-fill seed fill from Graphics Gems
	// (Heckbert 1990).
	AlgorithmHeckbert

	// AlgorithmRunLength fills rectangular blocks over a Boolean
	// occupancy grid.
	AlgorithmRunLength

	algorithmCount
)

// Algorithms lists every algorithm in declaration order.
var Algorithms = []Algorithm{
	AlgorithmRecursive,
	AlgorithmDFS,
	AlgorithmBFS,
	AlgorithmSpan,
	AlgorithmHeckbert,
	AlgorithmRunLength,
}

var algorithmNames = [algorithmCount]string{
	AlgorithmRecursive: "recursive",
	AlgorithmDFS:       "dfs",
	AlgorithmBFS:       "bfs",
	AlgorithmSpan:      "span",
	AlgorithmHeckbert:  "heckbert",
	AlgorithmRunLength: "runlength",
}

// String returns the algorithm name as accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	if a < algorithmCount {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", a)
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a < algorithmCount
}

// ParseAlgorithm returns the algorithm with the given name. Matching is
// case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range algorithmNames {
		if name == s {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// fillFunc paints the region reachable from (x, y), passing every step to
// yield. It returns false as soon as yield does, without painting further.
type fillFunc func(r *region, x, y int, yield func(Step) bool) bool

// fillFuncs maps color-grid algorithms to their implementation.
// AlgorithmRunLength works on an occupancy grid and is dispatched separately.
var fillFuncs = [algorithmCount]fillFunc{
	AlgorithmRecursive: fillRecursive,
	AlgorithmDFS:       fillDFS,
	AlgorithmBFS:       fillBFS,
	AlgorithmSpan:      fillSpan,
	AlgorithmHeckbert:  fillHeckbert,
}
