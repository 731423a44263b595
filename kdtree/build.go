package kdtree

import (
	"cmp"
	"slices"
)

// Build constructs a balanced tree from points.
//
// All points must share the same non-zero dimensionality and have a
// non-negative Index. The input slice is
// not modified; coordinates are copied so later changes by the caller do not
// affect the tree.
func Build(points []Point) (*Tree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}

	dims := points[0].Dims()
	if dims == 0 {
		return nil, &ErrInvalidDimension{Dimension: 0}
	}

	pts := make([]Point, len(points))
	for i, p := range points {
		if p.Dims() != dims {
			return nil, &ErrDimensionMismatch{Expected: dims, Actual: p.Dims(), Index: i}
		}
		if p.Index < 0 {
			return nil, &ErrNegativeIndex{Index: p.Index, Position: i}
		}
		pts[i] = p.Clone()
	}

	return &Tree{
		root:  build(pts, dims),
		dims:  dims,
		count: len(pts),
	}, nil
}

// build partitions pts in place. pts is never empty.
func build(pts []Point, dims int) *Node {
	axis := ChooseDimension(pts, dims)
	sortDim(pts, axis)
	split := splitPoint(len(pts))

	n := &Node{Point: pts[split], Axis: axis}
	if split > 0 {
		n.Left = build(pts[:split], dims)
	}
	if split+1 < len(pts) {
		n.Right = build(pts[split+1:], dims)
	}
	return n
}

// ChooseDimension returns the axis with the greatest max-min span across pts.
// The lowest axis wins ties, so a range of identical points selects axis 0.
func ChooseDimension(pts []Point, dims int) int {
	if len(pts) == 0 {
		return 0
	}

	best, bestSpan := 0, uint64(0)
	for axis := range dims {
		lo, hi := pts[0].Coords[axis], pts[0].Coords[axis]
		for _, p := range pts[1:] {
			lo = min(lo, p.Coords[axis])
			hi = max(hi, p.Coords[axis])
		}
		// hi >= lo, so the unsigned difference is exact even across the full int64 range.
		span := uint64(hi) - uint64(lo)
		if axis == 0 || span > bestSpan {
			best, bestSpan = axis, span
		}
	}
	return best
}

func sortDim(pts []Point, axis int) {
	slices.SortStableFunc(pts, func(a, b Point) int {
		return cmp.Compare(a.Coords[axis], b.Coords[axis])
	})
}

// splitPoint returns the median position of a range of length n.
func splitPoint(n int) int {
	return n / 2
}
