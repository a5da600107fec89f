package tensor

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Add(t.raw, other.raw))
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Sub(t.raw, other.raw))
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Mul(t.raw, other.raw))
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Div(t.raw, other.raw))
}

// AddScalar adds a scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar float32) (*Tensor[T, B], error) {
	return t.wrap(t.backend.AddScalar(t.raw, scalar))
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar float32) (*Tensor[T, B], error) {
	return t.wrap(t.backend.MulScalar(t.raw, scalar))
}

// DivScalar divides every element by a scalar.
func (t *Tensor[T, B]) DivScalar(scalar float32) (*Tensor[T, B], error) {
	return t.wrap(t.backend.DivScalar(t.raw, scalar))
}

// ReLU applies max(x, 0) element-wise.
func (t *Tensor[T, B]) ReLU() (*Tensor[T, B], error) {
	return t.wrap(t.backend.ReLU(t.raw))
}

// Clamp limits every element to the closed range [lo, hi].
func (t *Tensor[T, B]) Clamp(lo, hi float32) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Clamp(t.raw, lo, hi))
}

// Conv2D convolves t [N, C_in, H, W] with kernel [C_out, C_in, K_h, K_w].
// Bias is not applied here; see nn.Conv2D.
func (t *Tensor[T, B]) Conv2D(kernel *Tensor[T, B], stride, padding int) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Conv2D(t.raw, kernel.raw, stride, padding))
}

// Reshape returns a tensor with the same data and a new shape.
func (t *Tensor[T, B]) Reshape(dims ...int) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Reshape(t.raw, Shape(dims)))
}

// Permute reorders the dimensions: result dimension i is input dimension axes[i].
//
// Example:
//
//	hwc, _ := chw.Permute(1, 2, 0) // [C, H, W] -> [H, W, C]
func (t *Tensor[T, B]) Permute(axes ...int) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Transpose(t.raw, axes...))
}

// Unsqueeze inserts a dimension of size 1 at dim.
func (t *Tensor[T, B]) Unsqueeze(dim int) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Unsqueeze(t.raw, dim))
}

// Squeeze removes the dimension of size 1 at dim.
func (t *Tensor[T, B]) Squeeze(dim int) (*Tensor[T, B], error) {
	return t.wrap(t.backend.Squeeze(t.raw, dim))
}

// Flatten collapses all dimensions into one.
func (t *Tensor[T, B]) Flatten() (*Tensor[T, B], error) {
	return t.Reshape(t.NumElements())
}

// Cat concatenates tensors along dim. All tensors must share their shape
// except along dim.
//
// Example:
//
//	// [1, 3, H, W] + [1, 3, H, W] -> [1, 6, H, W]
//	x, err := tensor.Cat([]*tensor.Tensor[float32, B]{x1, x2}, 1)
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) (*Tensor[T, B], error) {
	if len(tensors) == 0 {
		return nil, NewShapeError("cat", "at least one tensor required")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	return tensors[0].wrap(tensors[0].backend.Cat(raws, dim))
}

// Cast converts a tensor to element type U.
//
// float32 -> uint8 truncates toward zero and saturates to [0, 255]; NaN becomes 0.
func Cast[U DType, T DType, B Backend](t *Tensor[T, B]) (*Tensor[U, B], error) {
	var dummy U
	raw, err := t.backend.Cast(t.raw, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	return New[U, B](raw, t.backend), nil
}
