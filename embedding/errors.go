package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when an input holds no embedding lines.
	ErrEmpty = errors.New("embedding: no vectors")

	// ErrNonFinite is wrapped by a ParseError for a NaN or infinite component.
	ErrNonFinite = errors.New("non-finite value")
)

// ParseError reports a line that could not be parsed.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("embedding: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("embedding: line %d: invalid value %q: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DimensionError reports a vector whose length differs from the store dimension.
type DimensionError struct {
	Line     int
	ID       string
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("embedding: line %d: node %q has dimension %d, expected %d", e.Line, e.ID, e.Actual, e.Expected)
	}
	return fmt.Sprintf("embedding: node %q has dimension %d, expected %d", e.ID, e.Actual, e.Expected)
}

var errMissingVector = errors.New("missing vector")
