package testutil

import (
	"testing"

	"github.com/hupe1980/kdgo/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformRows(t *testing.T) {
	rng := NewRNG(1)
	rows := rng.UniformRows(100, 3, -5, 5)

	require.Len(t, rows, 100)
	for _, row := range rows {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, int64(-5))
			assert.Less(t, v, int64(5))
		}
	}
}

func TestUniformRows_Deterministic(t *testing.T) {
	a := NewRNG(42).UniformRows(10, 2, 0, 1000)
	b := NewRNG(42).UniformRows(10, 2, 0, 1000)
	assert.Equal(t, a, b)

	rng := NewRNG(42)
	first := rng.UniformRows(10, 2, 0, 1000)
	rng.Reset()
	assert.Equal(t, first, rng.UniformRows(10, 2, 0, 1000))
}

func TestUniformRows_AppendDoesNotAlias(t *testing.T) {
	rows := NewRNG(3).UniformRows(2, 2, 0, 10)
	next := rows[1][0]
	_ = append(rows[0], 99)
	assert.Equal(t, next, rows[1][0])
}

func TestClusteredRows(t *testing.T) {
	rows := NewRNG(7).ClusteredRows(50, 4, 3, 2)
	require.Len(t, rows, 50)
	for _, row := range rows {
		assert.Len(t, row, 4)
	}
}

func TestConstantRows(t *testing.T) {
	rows := ConstantRows(3, []int64{1, 2})
	assert.Equal(t, [][]int64{{1, 2}, {1, 2}, {1, 2}}, rows)

	rows[0][0] = 9
	assert.Equal(t, int64(1), rows[1][0])
}

func TestExactNearest(t *testing.T) {
	rows := [][]int64{{0, 0}, {5, 5}, {9, 1}}

	idx, dist := ExactNearest([]int64{1, 1}, rows, distance.Euclidean)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.41421356, dist, 1e-6)

	idx, _ = ExactNearest([]int64{8, 2}, rows, distance.Manhattan)
	assert.Equal(t, 2, idx)

	idx, _ = ExactNearest([]int64{1, 1}, nil, distance.Euclidean)
	assert.Equal(t, -1, idx)
}
