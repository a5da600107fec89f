package nn

import (
	"fmt"

	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

// Parameter is a named, fixed tensor loaded from a params.Store.
//
// Example:
//
//	w, err := nn.LoadParameter(params.Scope(store, "e_conv1"), "weight",
//	    tensor.Shape{3, 3, 1, 1}, backend)
type Parameter[B tensor.Backend] struct {
	name   string                     // Name inside its scope (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// LoadParameter resolves name in store and checks it against the expected
// shape and element type.
//
// Errors wrap params.ErrMissingParameter when the name is absent and
// tensor.ErrShapeMismatch when the stored tensor has the wrong shape.
func LoadParameter[B tensor.Backend](store params.Store, name string, shape tensor.Shape, backend B) (*Parameter[B], error) {
	raw, err := store.Get(name)
	if err != nil {
		return nil, err
	}
	if !raw.Shape().Equal(shape) {
		return nil, tensor.NewShapeError("load "+name, "expected %v, got %v", shape, raw.Shape())
	}
	t, err := tensor.FromRaw[float32](raw, backend)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return &Parameter[B]{name: name, tensor: t}, nil
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}
