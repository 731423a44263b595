// Package kdtree implements a balanced k-d tree over integer points with exact
// single nearest-neighbor search.
//
// # Construction
//
// Build partitions the input recursively. At every level the axis with the
// widest coordinate span is chosen (lowest axis wins ties), the range is
// stably sorted on that axis and the element at position len/2 becomes the
// node. Everything before it forms the left subtree, everything after it the
// right subtree. Because the split is positional the tree height is
// ceil(log2(N+1)) regardless of the data distribution.
//
// Equal coordinates on the split axis may end up on either side; which side
// depends on input order (stable sort), so partitioning is not canonical.
//
// # Search
//
//	s := kdtree.NewSearcher(tree, distance.Euclidean)
//	res, err := s.Nearest([]int64{1, 1})
//
// The search is branch-and-bound: the subtree on the query's side of a split
// is always visited, the other one only if the distance from the query to the
// splitting hyperplane is strictly less than the best distance found so far.
// Left is visited before right; among equally distant candidates the first
// one encountered wins.
//
// Search recursion depth equals the tree height. Trees built by Build are
// balanced; trees assembled by hand or decoded from foreign files can be
// arbitrarily deep.
//
// A Tree is read-only after construction and may be searched from multiple
// goroutines. Searchers hold no per-query state.
package kdtree
