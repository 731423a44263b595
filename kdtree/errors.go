package kdtree

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a tree is built from zero points.
var ErrEmptyInput = errors.New("kdtree: empty input")

// ErrDimensionMismatch indicates a point or query whose coordinate count
// differs from the tree dimensionality.
//
// Index is the position of the offending point in the input, or -1 for queries.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	Index    int
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("kdtree: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("kdtree: dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrInvalidDimension indicates a point set without coordinates.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("kdtree: invalid dimension: %d", e.Dimension)
}

// ErrInvalidAxis indicates a node whose split axis lies outside [0, Dims).
type ErrInvalidAxis struct {
	Axis int
	Dims int
}

func (e *ErrInvalidAxis) Error() string {
	return fmt.Sprintf("kdtree: invalid axis %d for %d dimensions", e.Axis, e.Dims)
}

// ErrNegativeIndex indicates a point whose source index is below zero.
// Position is the offending point's place in the input, or -1 inside a
// hand-assembled tree.
type ErrNegativeIndex struct {
	Index    int
	Position int
}

func (e *ErrNegativeIndex) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("kdtree: negative point index %d", e.Index)
	}
	return fmt.Sprintf("kdtree: negative index %d at point %d", e.Index, e.Position)
}
