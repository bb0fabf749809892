package floodfill

import (
	"fmt"
	"image"
	"math"

	"github.com/google/uuid"
)

// Request describes one fill operation. Build it with NewRequest; a Request
// must not be modified while a fill using it is running.
//
// The reference (target) color is not part of the request. It is captured
// from the seed cell when the fill starts.
type Request struct {
	// ID identifies the request in log output.
	ID string

	// Seed is the starting cell.
	Seed image.Point

	// Fill is the color painted into the region.
	Fill RGBA

	// Threshold is the largest dissimilarity to the target color that
	// still counts as similar. Zero with MetricBinary or MetricEuclidean
	// admits only cells equal to the target color.
	Threshold float64

	// Metric selects the color comparator.
	Metric Metric

	// Algorithm selects the traversal strategy.
	Algorithm Algorithm

	// Obstacles optionally supplies the occupancy grid for AlgorithmRunLength.
	// It must have the grid's dimensions and is mutated by the fill.
	// When nil, the engine derives one from the grid and the target color.
	Obstacles *Occupancy
}

// NewRequest returns a validated request with a fresh ID.
func NewRequest(seed image.Point, fill RGBA, threshold float64, metric Metric, algorithm Algorithm) (Request, error) {
	r := Request{
		ID:        uuid.NewString(),
		Seed:      seed,
		Fill:      fill,
		Threshold: threshold,
		Metric:    metric,
		Algorithm: algorithm,
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// Validate checks the threshold range and the metric and algorithm selectors.
func (r Request) Validate() error {
	if math.IsNaN(r.Threshold) || r.Threshold < 0 || r.Threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, r.Threshold)
	}
	if !r.Metric.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownMetric, r.Metric)
	}
	if !r.Algorithm.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownAlgorithm, r.Algorithm)
	}
	return nil
}
