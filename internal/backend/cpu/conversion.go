package cpu

import (
	"github.com/born-ml/dehaze/internal/tensor"
)

// Cast converts the tensor to a different data type.
//
// float32 -> uint8 truncates toward zero after saturating to [0, 255];
// NaN becomes 0. Casting to the same dtype returns x unchanged.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x, nil
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		return nil, err
	}

	switch {
	case x.DType() == tensor.Uint8 && dtype == tensor.Float32:
		src := x.AsUint8()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case x.DType() == tensor.Float32 && dtype == tensor.Uint8:
		src := x.AsFloat32()
		dst := result.AsUint8()
		for i, v := range src {
			dst[i] = saturateUint8(v)
		}
	default:
		return nil, tensor.NewDTypeError("cast", x.DType())
	}

	return result, nil
}

// saturateUint8 converts v to uint8 with truncation, clamping out-of-range
// values instead of relying on Go's implementation-defined conversion.
func saturateUint8(v float32) uint8 {
	switch {
	case v >= 255:
		return 255
	case v > 0:
		return uint8(v)
	default: // negative, zero or NaN
		return 0
	}
}
