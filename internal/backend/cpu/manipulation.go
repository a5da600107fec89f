package cpu

import (
	"github.com/born-ml/dehaze/internal/tensor"
)

// The layout kernels below move whole elements as byte runs, so they work
// for every DataType without per-type dispatch.

// Reshape returns a tensor with the same data but different shape.
// Reshape is a view: the result shares storage with t.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) (*tensor.RawTensor, error) {
	return t.WithShape(newShape)
}

// Transpose permutes the tensor's dimensions: result dim i is input dim axes[i].
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) (*tensor.RawTensor, error) {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		return nil, tensor.NewShapeError("transpose", "axes length %d != ndim %d", len(axes), ndim)
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, tensor.NewShapeError("transpose", "invalid axis %d for %dD tensor", ax, ndim)
		}
		if seen[ax] {
			return nil, tensor.NewShapeError("transpose", "duplicate axis %d", ax)
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		return nil, err
	}

	transposeBytes(result.Data(), t.Data(), shape, axes, t.DType().Size())
	return result, nil
}

// transposeBytes walks the output in row-major order and gathers each element
// from its source position.
func transposeBytes(dst, src []byte, shape tensor.Shape, axes []int, elemSize int) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	// Stride in src for each output dimension
	permStrides := make([]int, ndim)
	outShape := make([]int, ndim)
	for i, ax := range axes {
		permStrides[i] = srcStrides[ax]
		outShape[i] = shape[ax]
	}

	coord := make([]int, ndim)
	srcIdx := 0
	total := shape.NumElements()
	for i := 0; i < total; i++ {
		copy(dst[i*elemSize:(i+1)*elemSize], src[srcIdx*elemSize:(srcIdx+1)*elemSize])

		// Odometer increment over the output coordinates
		for d := ndim - 1; d >= 0; d-- {
			coord[d]++
			srcIdx += permStrides[d]
			if coord[d] < outShape[d] {
				break
			}
			srcIdx -= coord[d] * permStrides[d]
			coord[d] = 0
		}
	}
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	// [1, 3, H, W] ++ [1, 3, H, W] along dim 1 -> [1, 6, H, W]
//	c, err := backend.Cat([]*tensor.RawTensor{a, b}, 1)
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	if len(tensors) == 0 {
		return nil, tensor.NewShapeError("cat", "at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		return nil, tensor.NewShapeError("cat", "dimension %d out of range for %dD tensor", dim, ndim)
	}

	// Validate shapes and calculate total size along concat dimension
	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			return nil, tensor.NewShapeError("cat", "tensor %d has %d dimensions, expected %d", i, len(tShape), ndim)
		}
		if t.DType() != dtype {
			return nil, tensor.NewDTypeError("cat", t.DType())
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				return nil, tensor.NewShapeError("cat", "tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d])
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		return nil, err
	}

	// outer: product of dims before dim; inner: bytes of one slab after dim.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := dtype.Size()
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	dst := result.Data()
	rowBytes := totalDim * inner
	offset := 0
	for _, t := range tensors {
		chunk := t.Shape()[dim] * inner
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*rowBytes+offset:o*rowBytes+offset+chunk], src[o*chunk:(o+1)*chunk])
		}
		offset += chunk
	}

	return result, nil
}

// Unsqueeze adds a dimension of size 1 at the specified position.
//
// Supports negative dim indexing. This is a view operation.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)

	// For unsqueeze, valid range is [0, ndim]
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		return nil, tensor.NewShapeError("unsqueeze", "dimension %d out of range for %dD tensor (valid: [0, %d])", dim, ndim, ndim)
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return x.WithShape(newShape)
}

// Squeeze removes a dimension of size 1 at the specified position.
//
// Fails with a *tensor.ShapeError if the dimension size is not 1.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		return nil, tensor.NewShapeError("squeeze", "dimension %d out of range for %dD tensor", dim, ndim)
	}
	if shape[dim] != 1 {
		return nil, tensor.NewShapeError("squeeze", "dimension %d has size %d, expected 1", dim, shape[dim])
	}

	newShape := make(tensor.Shape, 0, ndim-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)

	return x.WithShape(newShape)
}
