package floodfill

import (
	"fmt"
	"math"
	"strings"
)

// Comparator scores the dissimilarity of two colors.
// Zero means identical; larger values mean more different.
type Comparator func(a, b RGBA) float64

// Metric selects a color comparison function.
type Metric uint8

const (
	// MetricBinary scores 0 for equal colors and 1 otherwise.
	MetricBinary Metric = iota

	// MetricEuclidean is the RGB distance scaled by 1/√3 into [0, 1].
	// Alpha is ignored.
	MetricEuclidean

	// MetricEuclideanRGBA is the RGBA distance scaled by 1/√4 into [0, 1].
	MetricEuclideanRGBA

	// MetricLumaRec601 is the signed Rec. 601 luma difference a - b.
	// It is negative when a is darker than b, so a cell darker than the
	// target always passes a non-negative threshold.
	MetricLumaRec601

	// MetricLumaRec709 is the signed Rec. 709 luma difference a - b.
	MetricLumaRec709

	metricCount
)

// UIMetrics lists the metrics offered to interactive users.
// Rec. 709 luma is available programmatically but not listed.
var UIMetrics = []Metric{MetricBinary, MetricEuclidean, MetricLumaRec601}

var metricNames = [metricCount]string{
	MetricBinary:        "binary",
	MetricEuclidean:     "euclidean",
	MetricEuclideanRGBA: "euclidean-rgba",
	MetricLumaRec601:    "luma601",
	MetricLumaRec709:    "luma709",
}

// String returns the metric name as accepted by ParseMetric.
func (m Metric) String() string {
	if m < metricCount {
		return metricNames[m]
	}
	return fmt.Sprintf("Metric(%d)", m)
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m < metricCount
}

// ParseMetric returns the metric with the given name. Matching is
// case-insensitive.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range metricNames {
		if name == s {
			return Metric(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Comparator returns the comparison function for m.
// Unknown metrics fall back to CompareBinary.
func (m Metric) Comparator() Comparator {
	switch m {
	case MetricEuclidean:
		return CompareEuclidean
	case MetricEuclideanRGBA:
		return CompareEuclideanRGBA
	case MetricLumaRec601:
		return CompareLumaRec601
	case MetricLumaRec709:
		return CompareLumaRec709
	default:
		return CompareBinary
	}
}

// Dissimilarity scores a against b under metric m.
func (m Metric) Dissimilarity(a, b RGBA) float64 {
	return m.Comparator()(a, b)
}

// CompareBinary returns 0 if a and b are equal and 1 otherwise.
func CompareBinary(a, b RGBA) float64 {
	if a.Equal(b) {
		return 0
	}
	return 1
}

// CompareEuclidean returns the RGB distance of a and b divided by √3.
func CompareEuclidean(a, b RGBA) float64 {
	return a.colorful().DistanceRgb(b.colorful()) / math.Sqrt(3)
}

// CompareEuclideanRGBA returns the RGBA distance of a and b divided by 2.
func CompareEuclideanRGBA(a, b RGBA) float64 {
	dr, dg, db, da := a.R-b.R, a.G-b.G, a.B-b.B, a.A-b.A
	return math.Sqrt(dr*dr+dg*dg+db*db+da*da) / 2
}

// CompareLumaRec601 returns luma601(a) - luma601(b). The result is signed.
func CompareLumaRec601(a, b RGBA) float64 {
	return a.Luma601() - b.Luma601()
}

// CompareLumaRec709 returns luma709(a) - luma709(b). The result is signed.
func CompareLumaRec709(a, b RGBA) float64 {
	return a.Luma709() - b.Luma709()
}
