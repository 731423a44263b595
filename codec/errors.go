package codec

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is matched by every error caused by invalid persisted data.
var ErrMalformedTree = errors.New("malformed persisted tree")

// ParseError describes an invalid line of a persisted tree.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ParseError struct {
	// Line is the 1-based line number; 0 means the error is not tied to a line.
	Line   int
	Text   string
	Reason string
	cause  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("codec: %s: %s", ErrMalformedTree, e.Reason)
	}
	return fmt.Sprintf("codec: %s: line %d: %s: %q", ErrMalformedTree, e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Is makes every ParseError match ErrMalformedTree.
func (e *ParseError) Is(target error) bool { return target == ErrMalformedTree }
