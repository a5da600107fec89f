// Package cpu implements the CPU backend: broadcasting element-wise kernels,
// layout manipulation and an im2col convolution on top of gonum BLAS.
package cpu

import (
	"github.com/born-ml/dehaze/internal/parallel"
	"github.com/born-ml/dehaze/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// A CPUBackend holds no mutable state and may be shared by any number of
// goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend using all available cores.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallelism config.
// Use parallel.Sequential() to keep every kernel on the calling goroutine.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary("div", a, b, func(x, y float32) float32 { return x / y })
}

// binary runs op over a and b, broadcasting when the shapes differ.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, op func(x, y float32) float32) (*tensor.RawTensor, error) {
	if a.DType() != tensor.Float32 {
		return nil, tensor.NewDTypeError(name, a.DType())
	}
	if b.DType() != tensor.Float32 {
		return nil, tensor.NewDTypeError(name, b.DType())
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		return nil, err
	}

	dst := result.AsFloat32()
	x := a.AsFloat32()
	y := b.AsFloat32()

	if !needsBroadcast {
		// Fast path: identical shapes
		for i := range dst {
			dst[i] = op(x[i], y[i])
		}
		return result, nil
	}

	// Slow path: broadcasting required
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)
	for i := range dst {
		dst[i] = op(x[computeFlatIndex(i, outStrides, aStrides)], y[computeFlatIndex(i, outStrides, bStrides)])
	}
	return result, nil
}
