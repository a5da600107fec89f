package tensor

import "fmt"

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Returns a *ShapeError if len(data) does not match the shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if shape.NumElements() != len(data) {
		return nil, NewShapeError("from_slice", "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		return nil, err
	}

	// Copy data into raw tensor
	t := New[T, B](raw, b)
	copy(t.Data(), data)

	return t, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		return nil, err
	}
	return New[T, B](raw, b), nil
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) (*Tensor[T, B], error) {
	t, err := Zeros[T, B](shape, b)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// FromRaw wraps a RawTensor as a Tensor[T, B], checking that the element
// types agree.
func FromRaw[T DType, B Backend](raw *RawTensor, b B) (*Tensor[T, B], error) {
	var dummy T
	if want := inferDataType(dummy); raw.DType() != want {
		return nil, fmt.Errorf("from_raw: %w: tensor is %s, want %s", ErrDTypeMismatch, raw.DType(), want)
	}
	return New[T, B](raw, b), nil
}
