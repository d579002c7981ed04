package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidRef indicates a cell or range reference that cannot be parsed.
var ErrInvalidRef = errors.New("invalid cell reference")

// ErrOutOfBounds indicates a coordinate outside the worksheet limits.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// RangeError reports a failure to resolve a reference against a range.
type RangeError struct {
	Ref string
	Err error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("resolve range %q: %v", e.Ref, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

func newRangeError(ref string, err error) *RangeError {
	return &RangeError{Ref: ref, Err: err}
}
