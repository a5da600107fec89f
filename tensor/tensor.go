// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/dehaze/internal/tensor"
)

// DType is a constraint for tensor element types: float32 or uint8.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Uint8   DataType = tensor.Uint8
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only supported device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 480, 640} is one RGB image of 480x640 pixels.
type Shape = tensor.Shape

// Backend is the interface compute backends implement.
type Backend = tensor.Backend

// RawTensor is the untyped tensor storage: bytes, shape, dtype and device.
//
// Most users should use the high-level Tensor[T, B] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
type RawTensor = tensor.RawTensor

// Tensor is a generic type-safe tensor bound to a backend.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y, err := x.AddScalar(1)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// ShapeError describes a shape violation. It unwraps to ErrShapeMismatch.
type ShapeError = tensor.ShapeError

// Sentinel errors.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDTypeMismatch = tensor.ErrDTypeMismatch
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.Zeros[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.Full[float32](tensor.Shape{2, 3}, 0.5, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) (*Tensor[T, B], error) {
	return tensor.Full[T, B](shape, value, b)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// FromRaw wraps a raw tensor, checking that its dtype matches T.
func FromRaw[T DType, B Backend](raw *RawTensor, b B) (*Tensor[T, B], error) {
	return tensor.FromRaw[T, B](raw, b)
}

// NewRaw creates a new zeroed raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Cat concatenates tensors along a dimension.
//
// Example:
//
//	// [1, 3, H, W] + [1, 3, H, W] -> [1, 6, H, W]
//	c, err := tensor.Cat([]*tensor.Tensor[float32, B]{a, b}, 1)
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) (*Tensor[T, B], error) {
	return tensor.Cat(tensors, dim)
}

// Cast converts a tensor to element type U.
//
// float32 -> uint8 truncates toward zero and saturates to [0, 255].
func Cast[U DType, T DType, B Backend](t *Tensor[T, B]) (*Tensor[U, B], error) {
	return tensor.Cast[U](t)
}

// BroadcastShapes computes the broadcast shape for two shapes following NumPy
// broadcasting rules. The flag reports whether either operand needs expanding.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
