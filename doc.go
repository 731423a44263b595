// Package kdgo provides an exact nearest-neighbor index over integer points
// backed by a kd-tree.
//
// The tree is built once from a point set and is immutable afterwards. Each
// stored point keeps the position it had in the input, so a query answers
// "which input row is closest".
//
// # Quick Start
//
//	ctx := context.Background()
//	idx, err := kdgo.Build(ctx, [][]int64{{0, 0}, {5, 5}, {9, 1}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, _ := idx.Search(ctx, []int64{1, 1})
//	fmt.Println(res.Index, res.Distance) // 0 1.4142135623730951
//
// # Metrics
//
// Euclidean distance is the default. Manhattan distance is selected with
// WithMetric(distance.MetricManhattan), and any function can be plugged in
// with WithDistanceFunc.
//
// # Persistence
//
// Trees are stored in a line-oriented text format (see package codec),
// optionally wrapped in a zstd or lz4 frame:
//
//	store := blobstore.NewLocalStore("./trees")
//	_ = idx.Save(ctx, store, "points.kdt")
//	idx, err = kdgo.Load(ctx, store, "points.kdt")
//
// Stores for Amazon S3 and MinIO live in blobstore/s3 and blobstore/minio.
//
// # Observability
//
// WithLogger attaches a structured slog logger and WithMetricsCollector a
// MetricsCollector; both default to no-ops.
package kdgo
