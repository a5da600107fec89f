package cpu

import (
	"github.com/born-ml/dehaze/internal/tensor"
)

// AddScalar adds scalar to every element of x.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float32) (*tensor.RawTensor, error) {
	return cpu.unary("add_scalar", x, func(v float32) float32 { return v + scalar })
}

// MulScalar multiplies every element of x by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float32) (*tensor.RawTensor, error) {
	return cpu.unary("mul_scalar", x, func(v float32) float32 { return v * scalar })
}

// DivScalar divides every element of x by scalar. Each element is divided,
// not multiplied by the reciprocal.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float32) (*tensor.RawTensor, error) {
	return cpu.unary("div_scalar", x, func(v float32) float32 { return v / scalar })
}

// unary applies op to every float32 element of x into a fresh tensor.
func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor, op func(v float32) float32) (*tensor.RawTensor, error) {
	if x.DType() != tensor.Float32 {
		return nil, tensor.NewDTypeError(name, x.DType())
	}

	result, err := tensor.NewRaw(x.Shape(), tensor.Float32, cpu.device)
	if err != nil {
		return nil, err
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = op(v)
	}
	return result, nil
}
