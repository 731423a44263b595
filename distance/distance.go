package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownMetric is returned when a metric name or value is not recognized.
var ErrUnknownMetric = errors.New("unknown metric")

// Func computes the distance between two coordinate vectors.
// Both vectors must have the same length (caller's responsibility).
type Func func(a, b []int64) float64

// Euclidean returns the Euclidean (L2) distance between a and b.
func Euclidean(a, b []int64) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan returns the taxicab (L1) distance between a and b.
func Manhattan(a, b []int64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}

// SignedTaxicab sums the signed per-axis differences a[i]-b[i].
//
// The result can be negative and opposite displacements cancel, so this is
// not a metric. It reproduces the output of the legacy taxicab query tool.
// Pruning is not guaranteed to be exact under this function.
func SignedTaxicab(a, b []int64) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) - float64(b[i])
	}
	return sum
}

// Metric identifies a built-in distance function.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricSignedTaxicab
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricManhattan:
		return "manhattan"
	case MetricSignedTaxicab:
		return "signed-taxicab"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Exact reports whether nearest-neighbor pruning is exact under m.
func (m Metric) Exact() bool {
	return m == MetricEuclidean || m == MetricManhattan
}

// ParseMetric resolves a metric from its name. Matching is case-insensitive
// and accepts a few common aliases.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "l2":
		return MetricEuclidean, nil
	case "manhattan", "taxicab", "l1":
		return MetricManhattan, nil
	case "signed-taxicab", "legacy-taxicab":
		return MetricSignedTaxicab, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricSignedTaxicab:
		return SignedTaxicab, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}
