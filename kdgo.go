package kdgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/kdgo/blobstore"
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/kdtree"
)

// Result is the nearest stored point for one query.
type Result = kdtree.Result

// Point is a coordinate vector tagged with its source index.
type Point = kdtree.Point

// Index is an immutable kd-tree paired with the distance metric used to search it.
//
// An Index is safe for concurrent searches.
type Index struct {
	tree     *kdtree.Tree
	searcher *kdtree.Searcher
	opts     options
}

// Build constructs an Index from rows. Row position i becomes the point index i.
func Build(ctx context.Context, rows [][]int64, optFns ...Option) (*Index, error) {
	return BuildPoints(ctx, kdtree.NewPoints(rows), optFns...)
}

// BuildPoints constructs an Index from explicitly indexed points.
func BuildPoints(ctx context.Context, points []Point, optFns ...Option) (*Index, error) {
	o, err := resolveOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := kdtree.Build(points)
	err = translateError(err)
	o.metricsCollector.RecordBuild(len(points), time.Since(start), err)
	if err != nil {
		o.logger.LogBuild(ctx, len(points), 0, 0, err)
		return nil, err
	}
	o.logger.LogBuild(ctx, tree.Len(), tree.Dims(), tree.Height(), nil)

	return newIndex(tree, o), nil
}

// FromTree wraps an existing tree.
func FromTree(tree *kdtree.Tree, optFns ...Option) (*Index, error) {
	if tree == nil || tree.Root() == nil {
		return nil, ErrEmptyInput
	}
	o, err := resolveOptions(optFns)
	if err != nil {
		return nil, err
	}
	return newIndex(tree, o), nil
}

// Decode reads a tree in text format from r. Compressed input is detected
// automatically.
func Decode(ctx context.Context, r io.Reader, optFns ...Option) (*Index, error) {
	o, err := resolveOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := decode(r)
	o.metricsCollector.RecordLoad(time.Since(start), err)
	if err != nil {
		o.logger.LogLoad(ctx, "", 0, err)
		return nil, err
	}
	o.logger.LogLoad(ctx, "", tree.Len(), nil)

	return newIndex(tree, o), nil
}

// Load reads the tree stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Index, error) {
	o, err := resolveOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := load(ctx, store, name)
	o.metricsCollector.RecordLoad(time.Since(start), err)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	o.logger.LogLoad(ctx, name, tree.Len(), nil)

	return newIndex(tree, o), nil
}

func load(ctx context.Context, store blobstore.BlobStore, name string) (*kdtree.Tree, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	tree, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return tree, nil
}

func decode(r io.Reader) (*kdtree.Tree, error) {
	cr, _, err := codec.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	tree, err := codec.Decode(cr)
	return tree, translateError(err)
}

func resolveOptions(optFns []Option) (options, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.distanceFunc == nil {
		fn, err := distance.Provider(o.metric)
		if err != nil {
			return o, err
		}
		o.distanceFunc = fn
		o.logger = o.logger.WithMetric(metricName(o.metric, false))
	} else {
		o.logger = o.logger.WithMetric(metricName(o.metric, true))
	}
	return o, nil
}

func newIndex(tree *kdtree.Tree, o options) *Index {
	o.logger = o.logger.WithDimension(tree.Dims()).WithCount(tree.Len())
	return &Index{
		tree:     tree,
		searcher: kdtree.NewSearcher(tree, o.distanceFunc),
		opts:     o,
	}
}

// Tree returns the underlying tree.
func (ix *Index) Tree() *kdtree.Tree { return ix.tree }

// Dims returns the dimensionality of the stored points.
func (ix *Index) Dims() int { return ix.tree.Dims() }

// Len returns the number of stored points.
func (ix *Index) Len() int { return ix.tree.Len() }

// Search returns the stored point nearest to query.
func (ix *Index) Search(ctx context.Context, query []int64) (Result, error) {
	start := time.Now()
	res, err := ix.searcher.Nearest(query)
	err = translateError(err)
	ix.opts.metricsCollector.RecordSearch(time.Since(start), err)
	ix.opts.logger.LogSearch(ctx, res.Index, res.Distance, err)
	return res, err
}

// SearchAll answers queries in order. It stops at the first failing query
// or when ctx is canceled.
func (ix *Index) SearchAll(ctx context.Context, queries [][]int64) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := ix.Search(ctx, q)
		if err != nil {
			return results, fmt.Errorf("query %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Encode writes the tree in uncompressed text format.
func (ix *Index) Encode(w io.Writer) error {
	return codec.Encode(w, ix.tree)
}

// Save persists the tree under name using the configured compression.
func (ix *Index) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	start := time.Now()
	data, err := codec.Marshal(ix.tree, ix.opts.compression)
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	if err != nil {
		err = fmt.Errorf("save %s: %w", name, err)
	}
	ix.opts.metricsCollector.RecordSave(len(data), time.Since(start), err)
	ix.opts.logger.LogSave(ctx, name, len(data), err)
	return err
}

// Validate checks that the stored indices are exactly 0..Len()-1.
//
// Trees built with Build always pass. Trees built with BuildPoints or
// decoded from external data may not.
func (ix *Index) Validate() error {
	n := ix.tree.Len()
	indices := ix.tree.Indices()
	if int(indices.GetCardinality()) != n {
		return fmt.Errorf("%w: %d distinct indices for %d points", ErrInvalidIndices, indices.GetCardinality(), n)
	}
	if n > 0 && int(indices.Maximum()) != n-1 {
		return fmt.Errorf("%w: largest index %d for %d points", ErrInvalidIndices, indices.Maximum(), n)
	}
	return nil
}
