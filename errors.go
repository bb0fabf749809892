package floodfill

import "errors"

// Fill errors.
var (
	// ErrInvalidThreshold is returned when a threshold is outside [0, 1] or NaN.
	ErrInvalidThreshold = errors.New("floodfill: threshold must be in [0, 1]")

	// ErrDimensionMismatch is returned when an occupancy grid does not have
	// the same size as the color grid it belongs to.
	ErrDimensionMismatch = errors.New("floodfill: grid dimensions do not match")

	// ErrUnknownMetric is returned for an unrecognized comparison metric.
	ErrUnknownMetric = errors.New("floodfill: unknown metric")

	// ErrUnknownAlgorithm is returned for an unrecognized fill algorithm.
	ErrUnknownAlgorithm = errors.New("floodfill: unknown algorithm")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("floodfill: invalid color")

	// ErrNilGrid is returned when a fill is started without a grid.
	ErrNilGrid = errors.New("floodfill: nil grid")
)
