package cpu

import (
	"fmt"

	"github.com/born-ml/dehaze/internal/tensor"
)

// ReLU computes max(x, 0) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.unary("relu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Clamp limits every element to [lo, hi]. NaN maps to lo.
func (cpu *CPUBackend) Clamp(x *tensor.RawTensor, lo, hi float32) (*tensor.RawTensor, error) {
	if lo > hi {
		return nil, fmt.Errorf("clamp: lower bound %v exceeds upper bound %v", lo, hi)
	}
	return cpu.unary("clamp", x, func(v float32) float32 {
		switch {
		case v > hi:
			return hi
		case v >= lo:
			return v
		default: // below lo, or NaN
			return lo
		}
	})
}
