package kdgo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/kdgo/blobstore"
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/kdtree"
	"github.com/hupe1980/kdgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndSearch(t *testing.T) {
	ctx := context.Background()

	idx, err := Build(ctx, [][]int64{{0, 0}, {5, 5}, {9, 1}})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, idx.Dims())
	require.NoError(t, idx.Validate())

	res, err := idx.Search(ctx, []int64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, []int64{0, 0}, res.Coords)
	assert.InDelta(t, 1.41421356, res.Distance, 1e-6)
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Build(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Build(ctx, [][]int64{{1, 2}, {3}})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
	assert.Equal(t, 1, dm.Index)

	var inner *kdtree.ErrDimensionMismatch
	assert.ErrorAs(t, err, &inner)

	_, err = Build(ctx, [][]int64{{}})
	var id *ErrInvalidDimension
	assert.ErrorAs(t, err, &id)

	_, err = Build(ctx, [][]int64{{1}}, WithMetric(distance.Metric(42)))
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
}

func TestSearchDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx, err := Build(ctx, [][]int64{{0, 0}, {1, 1}})
	require.NoError(t, err)

	_, err = idx.Search(ctx, []int64{1, 1, 1})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, -1, dm.Index)
	assert.Equal(t, 3, dm.Actual)
}

func TestSearchMatchesLinearScan(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)

	for _, m := range []distance.Metric{distance.MetricEuclidean, distance.MetricManhattan} {
		t.Run(m.String(), func(t *testing.T) {
			rows := rng.UniformRows(500, 3, -1000, 1000)
			idx, err := Build(ctx, rows, WithMetric(m))
			require.NoError(t, err)

			fn, err := distance.Provider(m)
			require.NoError(t, err)

			queries := rng.UniformRows(100, 3, -1200, 1200)
			results, err := idx.SearchAll(ctx, queries)
			require.NoError(t, err)
			require.Len(t, results, len(queries))

			for i, q := range queries {
				_, want := testutil.ExactNearest(q, rows, fn)
				assert.InDelta(t, want, results[i].Distance, 1e-9, "query %d", i)
				assert.InDelta(t, want, fn(rows[results[i].Index], q), 1e-9, "query %d", i)
			}
		})
	}
}

func TestWithDistanceFunc(t *testing.T) {
	ctx := context.Background()

	chebyshev := func(a, b []int64) float64 {
		var best float64
		for i := range a {
			d := float64(a[i] - b[i])
			if d < 0 {
				d = -d
			}
			if d > best {
				best = d
			}
		}
		return best
	}

	idx, err := Build(ctx, [][]int64{{0, 0}, {4, 1}, {10, 10}}, WithDistanceFunc(chebyshev))
	require.NoError(t, err)

	res, err := idx.Search(ctx, []int64{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, 2.0, res.Distance)
}

func TestSearchAll(t *testing.T) {
	ctx := context.Background()
	idx, err := Build(ctx, [][]int64{{0}, {10}, {20}})
	require.NoError(t, err)

	results, err := idx.SearchAll(ctx, [][]int64{{1}, {19}, {11}})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 2, results[1].Index)
	assert.Equal(t, 1, results[2].Index)

	t.Run("StopsOnError", func(t *testing.T) {
		results, err := idx.SearchAll(ctx, [][]int64{{1}, {1, 2}, {3}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query 1")
		assert.Len(t, results, 1)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := idx.SearchAll(cctx, [][]int64{{1}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	rows := testutil.NewRNG(3).UniformRows(200, 4, -50, 50)

	for _, c := range []codec.Compression{codec.CompressionNone, codec.CompressionLZ4, codec.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			store := blobstore.NewLocalStore(t.TempDir())

			idx, err := Build(ctx, rows, WithCompression(c))
			require.NoError(t, err)
			require.NoError(t, idx.Save(ctx, store, "trees/points.kdt"))

			loaded, err := Load(ctx, store, "trees/points.kdt")
			require.NoError(t, err)
			assert.True(t, idx.Tree().Equal(loaded.Tree()))
			require.NoError(t, loaded.Validate())

			q := []int64{1, 2, 3, 4}
			want, err := idx.Search(ctx, q)
			require.NoError(t, err)
			got, err := loaded.Search(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "missing.kdt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad.kdt", []byte("1,2,x,0\nNULL\nNULL\n")))
	_, err = Load(ctx, store, "bad.kdt")
	assert.ErrorIs(t, err, ErrMalformedTree)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}

func TestEncodeDecode(t *testing.T) {
	ctx := context.Background()
	idx, err := Build(ctx, [][]int64{{3, 4}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, idx.Encode(&buf))
	assert.Equal(t, "3,4,0,0\nNULL\nNULL\n", buf.String())

	decoded, err := Decode(ctx, &buf)
	require.NoError(t, err)
	assert.True(t, idx.Tree().Equal(decoded.Tree()))

	_, err = Decode(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	idx, err := BuildPoints(ctx, []Point{
		{Coords: []int64{0}, Index: 0},
		{Coords: []int64{1}, Index: 0},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, idx.Validate(), ErrInvalidIndices)

	idx, err = BuildPoints(ctx, []Point{
		{Coords: []int64{0}, Index: 0},
		{Coords: []int64{1}, Index: 5},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, idx.Validate(), ErrInvalidIndices)

	idx, err = BuildPoints(ctx, []Point{
		{Coords: []int64{0}, Index: 1},
		{Coords: []int64{1}, Index: 0},
	})
	require.NoError(t, err)
	assert.NoError(t, idx.Validate())
}

func TestBuildPointsIndexRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := BuildPoints(ctx, []Point{{Coords: []int64{1, 2}, Index: -1}})
	var ni *ErrNegativeIndex
	require.ErrorAs(t, err, &ni)
	assert.Equal(t, 0, ni.Position)

	// Non-sequential but non-negative indices survive Save and Load.
	idx, err := BuildPoints(ctx, []Point{
		{Coords: []int64{1, 2}, Index: 7},
		{Coords: []int64{3, 4}, Index: 0},
	})
	require.NoError(t, err)
	require.NoError(t, idx.Save(ctx, store, "sparse.kdt"))

	loaded, err := Load(ctx, store, "sparse.kdt")
	require.NoError(t, err)
	assert.True(t, idx.Tree().Equal(loaded.Tree()))
	assert.ErrorIs(t, loaded.Validate(), ErrInvalidIndices)
}

func TestFromTree(t *testing.T) {
	_, err := FromTree(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = FromTree(&kdtree.Tree{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	tree, err := kdtree.Build(kdtree.NewPoints([][]int64{{1, 1}, {2, 2}}))
	require.NoError(t, err)

	idx, err := FromTree(tree)
	require.NoError(t, err)
	assert.Same(t, tree, idx.Tree())
}

func TestMetricsCollector(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}
	store := blobstore.NewMemoryStore()

	_, err := Build(ctx, nil, WithMetricsCollector(mc))
	require.Error(t, err)

	idx, err := Build(ctx, [][]int64{{0, 0}, {1, 1}}, WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = idx.Search(ctx, []int64{0, 1})
	require.NoError(t, err)
	_, err = idx.Search(ctx, []int64{0})
	require.Error(t, err)

	require.NoError(t, idx.Save(ctx, store, "t.kdt"))
	_, err = Load(ctx, store, "t.kdt", WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Load(ctx, store, "missing", WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.Stats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(2), stats.BuildPoints)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Positive(t, stats.SaveBytes)
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
}

func TestBasicMetricsCollectorStats(t *testing.T) {
	mc := &BasicMetricsCollector{}
	assert.Equal(t, BasicMetricsStats{}, mc.Stats())

	mc.RecordSearch(10*time.Nanosecond, nil)
	mc.RecordSearch(30*time.Nanosecond, errors.New("x"))
	mc.RecordSave(0, 0, errors.New("x"))

	stats := mc.Stats()
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(20), stats.SearchAvgNanos)
	assert.Equal(t, int64(1), stats.SaveErrors)
	assert.Zero(t, stats.SaveBytes)
}

type failingStore struct {
	blobstore.BlobStore
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSaveError(t *testing.T) {
	ctx := context.Background()
	idx, err := Build(ctx, [][]int64{{1}})
	require.NoError(t, err)

	err = idx.Save(ctx, failingStore{blobstore.NewMemoryStore()}, "x.kdt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save x.kdt")
	assert.Contains(t, err.Error(), "disk full")
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, translateError(plain))

	err := translateError(&kdtree.ErrDimensionMismatch{Expected: 2, Actual: 3, Index: -1})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, "dimension mismatch: expected 2, got 3", dm.Error())
	assert.NotNil(t, errors.Unwrap(err))
}
