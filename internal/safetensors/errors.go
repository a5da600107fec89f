package safetensors

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrHeaderTooLarge   = errors.New("header exceeds maximum size")
	ErrTruncated        = errors.New("file truncated")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrNegativeOffset   = errors.New("negative offset or size")
	ErrOutOfBounds      = errors.New("tensor extends beyond data section")
	ErrOffsetOverlap    = errors.New("tensor offsets overlap")
	ErrSizeMismatch     = errors.New("tensor byte size does not match dtype and shape")
	ErrInvalidShape     = errors.New("tensor shape has a non-positive dimension")
	ErrTensorNotFound   = errors.New("tensor not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Err     error  // One of the sentinel errors above
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Err, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Err, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
