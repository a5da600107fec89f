// Package safetensors reads and writes the SafeTensors weight format and
// materializes its tensors into a params.MapStore.
//
// Format:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
package safetensors

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"

	"github.com/born-ml/dehaze/internal/tensor"
)

// MaxHeaderSize bounds the JSON header (100 MiB).
const MaxHeaderSize = 100 * 1024 * 1024

// DType is a SafeTensors element type name.
type DType string

// SafeTensors dtypes understood by this package.
const (
	F16  DType = "F16"
	BF16 DType = "BF16"
	F32  DType = "F32"
	U8   DType = "U8"
)

// Size returns the element size in bytes, or 0 for unsupported dtypes.
func (d DType) Size() int {
	switch d {
	case F16, BF16:
		return 2
	case F32:
		return 4
	case U8:
		return 1
	default:
		return 0
	}
}

// target returns the tensor.DataType a dtype is materialized as.
// F16 and BF16 are widened to float32.
func (d DType) target() (tensor.DataType, error) {
	switch d {
	case F16, BF16, F32:
		return tensor.Float32, nil
	case U8:
		return tensor.Uint8, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDType, d)
	}
}

// fromDataType maps a tensor.DataType to its SafeTensors name.
func fromDataType(dt tensor.DataType) (DType, error) {
	switch dt {
	case tensor.Float32:
		return F32, nil
	case tensor.Uint8:
		return U8, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}

// TensorInfo describes a tensor in SafeTensors format.
type TensorInfo struct {
	DType       DType    `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end) relative to the data section
}

// Header is the JSON header in SafeTensors format.
type Header struct {
	Metadata map[string]string
	Tensors  map[string]TensorInfo
}

// UnmarshalJSON implements custom JSON unmarshaling for Header: every key
// except "__metadata__" is a tensor entry.
func (h *Header) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap["__metadata__"]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make(map[string]TensorInfo, len(rawMap))
	for key, value := range rawMap {
		if key == "__metadata__" {
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}

	return nil
}

// MarshalJSON writes the header back in SafeTensors layout.
func (h Header) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		out["__metadata__"] = h.Metadata
	}
	for name, info := range h.Tensors {
		out[name] = info
	}
	return json.Marshal(out)
}

// byteSize returns the number of bytes a tensor of this shape occupies.
// Fails with ErrInvalidShape for dimensions <= 0 and with ErrSizeMismatch
// when the size does not fit in an int64.
func (info TensorInfo) byteSize() (int64, error) {
	n := uint64(info.DType.Size())
	for _, dim := range info.Shape {
		if dim <= 0 {
			return 0, ErrInvalidShape
		}
		hi, lo := bits.Mul64(n, uint64(dim))
		if hi != 0 || lo > math.MaxInt64 {
			return 0, ErrSizeMismatch
		}
		n = lo
	}
	return int64(n), nil
}
