package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/kdgo/distance"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Int64Range returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Int64Range(minVal, maxVal int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Int63n(maxVal-minVal)
}

// UniformRows generates num rows of the given dimensionality with values in [minVal, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) UniformRows(num, dims int, minVal, maxVal int64) [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	data := make([]int64, num*dims)
	rows := make([][]int64, num)

	for i := range num {
		row := data[i*dims : (i+1)*dims : (i+1)*dims]
		for j := range row {
			row[j] = minVal + r.rand.Int63n(span)
		}
		rows[i] = row
	}

	return rows
}

// ClusteredRows generates num rows around clusters random centers,
// each coordinate offset by at most spread.
func (r *RNG) ClusteredRows(num, dims, clusters int, spread int64) [][]int64 {
	centers := r.UniformRows(clusters, dims, -10_000, 10_000)

	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]int64, num)
	for i := range rows {
		c := centers[r.rand.Intn(clusters)]
		row := make([]int64, dims)
		for j := range row {
			row[j] = c[j] + r.rand.Int63n(2*spread+1) - spread
		}
		rows[i] = row
	}
	return rows
}

// ConstantRows returns num copies of the same row.
func ConstantRows(num int, row []int64) [][]int64 {
	rows := make([][]int64, num)
	for i := range rows {
		rows[i] = append([]int64(nil), row...)
	}
	return rows
}

// ExactNearest scans rows linearly and returns the position and distance of
// the first row with the smallest distance to query.
func ExactNearest(query []int64, rows [][]int64, fn distance.Func) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, row := range rows {
		if d := fn(row, query); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
