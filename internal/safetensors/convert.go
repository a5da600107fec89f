package safetensors

import (
	"encoding/binary"
	"math"
)

// float16ToFloat32 converts IEEE 754 half precision to float32.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := int32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	var bits uint32

	switch exp {
	case 0:
		if mant == 0 {
			bits = sign << 31
			break
		}
		// Subnormal: shift until the implicit bit appears.
		e := int32(1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3FF
		bits = sign<<31 | uint32(e+127-15)<<23 | mant<<13
	case 0x1F:
		// Inf or NaN.
		bits = sign<<31 | 0x7F800000 | mant<<13
	default:
		bits = sign<<31 | uint32(exp+127-15)<<23 | mant<<13
	}

	return math.Float32frombits(bits)
}

// bfloat16ToFloat32 converts bfloat16 to float32. bfloat16 is the upper half
// of a float32, so widening is a shift.
func bfloat16ToFloat32(b uint16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// widen decodes little-endian 16-bit floats into dst.
func widen(dst []float32, src []byte, conv func(uint16) float32) {
	for i := range dst {
		dst[i] = conv(binary.LittleEndian.Uint16(src[2*i:]))
	}
}
