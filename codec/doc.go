// Package codec persists k-d trees in a line-oriented text format.
//
// The tree is written in pre-order. Every node becomes one line
//
//	coord_0,coord_1,...,coord_{d-1},index,axis
//
// followed by its left and then its right subtree. An absent child is written
// as the literal line NULL, which keeps the shape unambiguous on reload. A
// single point tree therefore takes three lines:
//
//	3,4,0,0
//	NULL
//	NULL
//
// The coordinate count of the first line fixes the dimensionality of the
// whole tree. Any line that does not fit that layout is reported as a
// *ParseError matching ErrMalformedTree.
//
// The text stream can optionally be wrapped in a zstd or lz4 frame.
// NewReader and Unmarshal detect the frame from its magic bytes, so readers
// never need to know which compression a writer used.
package codec
