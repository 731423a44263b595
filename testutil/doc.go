// Package testutil provides testing utilities for kdgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random integer point sets and
// computing exact nearest neighbors by linear scan.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.UniformRows(1000, 3, -100, 100)
//
// # Exact Search (Ground Truth)
//
//	idx, dist := testutil.ExactNearest(query, rows, distance.Euclidean)
package testutil
