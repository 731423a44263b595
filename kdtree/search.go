package kdtree

import (
	"slices"

	"github.com/hupe1980/kdgo/distance"
)

// Result is the outcome of a nearest-neighbor query.
type Result struct {
	// Index is the source position of the nearest stored point.
	Index int
	// Coords are the coordinates of the nearest stored point.
	Coords []int64
	// Distance is the metric distance from the query to that point.
	Distance float64
}

// Searcher answers nearest-neighbor queries against a Tree with a fixed metric.
type Searcher struct {
	tree *Tree
	dist distance.Func
}

// NewSearcher returns a Searcher for t. A nil fn selects distance.Euclidean.
func NewSearcher(t *Tree, fn distance.Func) *Searcher {
	if fn == nil {
		fn = distance.Euclidean
	}
	return &Searcher{tree: t, dist: fn}
}

// Tree returns the searched tree.
func (s *Searcher) Tree() *Tree { return s.tree }

type candidate struct {
	node *Node
	dist float64
}

// Nearest returns the stored point closest to query.
func (s *Searcher) Nearest(query []int64) (Result, error) {
	if s.tree == nil || s.tree.root == nil {
		return Result{}, ErrEmptyInput
	}
	if len(query) != s.tree.dims {
		return Result{}, &ErrDimensionMismatch{Expected: s.tree.dims, Actual: len(query), Index: -1}
	}

	root := s.tree.root
	// The root bounds both halves, so both children are always inspected.
	best := candidate{node: root, dist: s.dist(root.Point.Coords, query)}
	if root.Left != nil {
		s.find(root.Left, query, &best)
	}
	if root.Right != nil {
		s.find(root.Right, query, &best)
	}

	return Result{
		Index:    best.node.Point.Index,
		Coords:   slices.Clone(best.node.Point.Coords),
		Distance: best.dist,
	}, nil
}

func (s *Searcher) find(n *Node, query []int64, best *candidate) {
	if d := s.dist(n.Point.Coords, query); d < best.dist {
		best.node, best.dist = n, d
	}

	q, p := query[n.Axis], n.Point.Coords[n.Axis]
	plane := planeDistance(q, p)

	if n.Left != nil && (q <= p || plane < best.dist) {
		s.find(n.Left, query, best)
	}
	if n.Right != nil && (q >= p || plane < best.dist) {
		s.find(n.Right, query, best)
	}
}

// planeDistance is the absolute difference between two coordinates on one axis.
func planeDistance(a, b int64) float64 {
	if a > b {
		return float64(a) - float64(b)
	}
	return float64(b) - float64(a)
}
