package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Every operation allocates its result and leaves its inputs untouched, so a
// RawTensor can be shared freely between goroutines once built. Operations
// report bad input through the returned error (wrapping ErrShapeMismatch or
// ErrDTypeMismatch) instead of panicking.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)
	Sub(a, b *RawTensor) (*RawTensor, error)
	Mul(a, b *RawTensor) (*RawTensor, error)
	Div(a, b *RawTensor) (*RawTensor, error)

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float32) (*RawTensor, error)
	MulScalar(x *RawTensor, scalar float32) (*RawTensor, error)
	DivScalar(x *RawTensor, scalar float32) (*RawTensor, error)

	// Activation functions
	ReLU(x *RawTensor) (*RawTensor, error)                  // max(x, 0)
	Clamp(x *RawTensor, lo, hi float32) (*RawTensor, error) // min(max(x, lo), hi)

	// Convolutional operations
	// Conv2D: input [N, C_in, H, W], kernel [C_out, C_in, K_h, K_w].
	Conv2D(input, kernel *RawTensor, stride, padding int) (*RawTensor, error)

	// Shape operations
	Reshape(x *RawTensor, newShape Shape) (*RawTensor, error)
	Transpose(x *RawTensor, axes ...int) (*RawTensor, error)

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) (*RawTensor, error) // concatenate along dimension
	Unsqueeze(x *RawTensor, dim int) (*RawTensor, error)   // add dimension of size 1
	Squeeze(x *RawTensor, dim int) (*RawTensor, error)     // remove dimension of size 1

	// Type conversion
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
