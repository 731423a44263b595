package kdgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/kdtree"
)

var (
	// ErrEmptyInput is returned when building from zero points.
	ErrEmptyInput = kdtree.ErrEmptyInput

	// ErrMalformedTree is returned when persisted data cannot be parsed.
	ErrMalformedTree = codec.ErrMalformedTree

	// ErrInvalidIndices is returned by Validate when stored indices are not exactly 0..N-1.
	ErrInvalidIndices = errors.New("stored indices do not cover 0..N-1")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	// Index is the offending input position, or -1 for queries.
	Index int
	cause error
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates points without coordinates.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrNegativeIndex indicates a point with an index below zero. Such points
// cannot be persisted, so they are rejected at build time.
type ErrNegativeIndex = kdtree.ErrNegativeIndex

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *kdtree.ErrDimensionMismatch
	if errors.As(err, &dm) && !errors.Is(err, ErrMalformedTree) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, Index: dm.Index, cause: err}
	}
	var id *kdtree.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	return err
}
