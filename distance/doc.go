// Package distance provides the distance metrics used by the k-d tree search.
//
// Coordinates are integers; distances are accumulated as float64 so that
// integer inputs do not lose precision.
//
// # Supported Metrics
//
//   - MetricEuclidean: square root of the summed squared differences (default)
//   - MetricManhattan: summed absolute differences
//   - MetricSignedTaxicab: summed signed differences, kept for compatibility
//     with trees queried by older taxicab tooling
//
// # Usage
//
//	fn, _ := distance.Provider(distance.MetricEuclidean)
//	d := fn([]int64{0, 0}, []int64{3, 4}) // 5
//
// Any func(a, b []int64) float64 can be used as a custom metric. The search
// prunes subtrees using the absolute per-axis difference as a lower bound, so
// a custom metric must never be smaller than that difference on any axis.
package distance
