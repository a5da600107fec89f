package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrShapeMismatch is returned when an operation receives an input of the
	// wrong rank or extent.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDTypeMismatch is returned when an operation receives an element type
	// it does not support.
	ErrDTypeMismatch = errors.New("dtype mismatch")
)

// ShapeError provides detailed information about a shape failure.
// It unwraps to ErrShapeMismatch.
type ShapeError struct {
	Op      string // Operation that rejected its input (e.g., "conv2d", "cat")
	Details string // Additional details
}

// NewShapeError creates a *ShapeError for the given operation.
func NewShapeError(op, format string, args ...any) error {
	return &ShapeError{Op: op, Details: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrShapeMismatch, e.Details)
}

// Unwrap returns ErrShapeMismatch so callers can use errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// NewDTypeError reports an unsupported element type for op.
func NewDTypeError(op string, got DataType) error {
	return fmt.Errorf("%s: %w: unsupported dtype %s", op, ErrDTypeMismatch, got)
}
