package model

import "fmt"

// ConstructionError reports which layer could not be built from a parameter
// store.
type ConstructionError struct {
	Layer string // Layer scope, e.g. "e_conv5"
	Err   error  // Underlying error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Layer, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}
