package kdtree

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Node is one partition of the tree.
// Left and Right are nil when the corresponding half is empty.
type Node struct {
	Point Point
	Axis  int
	Left  *Node
	Right *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is an immutable k-d tree.
type Tree struct {
	root  *Node
	dims  int
	count int
}

// NewTree wraps an already assembled node hierarchy.
//
// Every node must have the root's dimensionality, a non-negative point index
// and an axis in [0, dims).
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, ErrEmptyInput
	}
	dims := root.Point.Dims()
	if dims == 0 {
		return nil, &ErrInvalidDimension{Dimension: 0}
	}

	t := &Tree{root: root, dims: dims}

	var err error
	t.Walk(func(n *Node, _ int) bool {
		if d := n.Point.Dims(); d != dims {
			err = &ErrDimensionMismatch{Expected: dims, Actual: d, Index: n.Point.Index}
			return false
		}
		if n.Point.Index < 0 {
			err = &ErrNegativeIndex{Index: n.Point.Index, Position: -1}
			return false
		}
		if n.Axis < 0 || n.Axis >= dims {
			err = &ErrInvalidAxis{Axis: n.Axis, Dims: dims}
			return false
		}
		t.count++
		return true
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Dims returns the dimensionality shared by all points.
func (t *Tree) Dims() int { return t.dims }

// Len returns the number of stored points.
func (t *Tree) Len() int { return t.count }

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	h := 0
	t.Walk(func(_ *Node, depth int) bool {
		if depth+1 > h {
			h = depth + 1
		}
		return true
	})
	return h
}

// Walk visits every node in pre-order (node, left, right). The root has
// depth 0. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.root == nil {
		return
	}
	type frame struct {
		n     *Node
		depth int
	}

	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(f.n, f.depth) {
			return
		}
		if f.n.Right != nil {
			stack = append(stack, frame{f.n.Right, f.depth + 1})
		}
		if f.n.Left != nil {
			stack = append(stack, frame{f.n.Left, f.depth + 1})
		}
	}
}

// Points returns copies of the stored points in pre-order.
func (t *Tree) Points() []Point {
	pts := make([]Point, 0, t.count)
	t.Walk(func(n *Node, _ int) bool {
		pts = append(pts, n.Point.Clone())
		return true
	})
	return pts
}

// Indices returns the set of point indices stored in the tree.
func (t *Tree) Indices() *roaring.Bitmap {
	bm := roaring.New()
	t.Walk(func(n *Node, _ int) bool {
		bm.Add(uint32(n.Point.Index))
		return true
	})
	return bm
}

// Equal reports whether t and o have the same shape and the same point,
// index and axis at every position.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.dims != o.dims || t.count != o.count {
		return false
	}
	return equalNodes(t.root, o.root)
}

func equalNodes(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Axis == b.Axis &&
		a.Point.Equal(b.Point) &&
		equalNodes(a.Left, b.Left) &&
		equalNodes(a.Right, b.Right)
}
