package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

// File is a parsed, validated SafeTensors blob held in memory.
type File struct {
	header Header
	data   []byte // Data section (everything after the header)
}

// Parse validates blob and returns a File backed by it. The blob must not be
// modified afterwards.
func Parse(blob []byte) (*File, error) {
	if len(blob) < 8 {
		return nil, &ValidationError{Err: ErrTruncated, Details: fmt.Sprintf("%d bytes, need at least 8", len(blob))}
	}

	headerSize := binary.LittleEndian.Uint64(blob[:8])
	if headerSize > MaxHeaderSize {
		return nil, &ValidationError{Err: ErrHeaderTooLarge, Details: fmt.Sprintf("%d bytes", headerSize)}
	}
	if headerSize > uint64(len(blob)-8) {
		return nil, &ValidationError{Err: ErrTruncated, Details: fmt.Sprintf("header needs %d bytes, %d available", headerSize, len(blob)-8)}
	}

	var header Header
	if err := json.Unmarshal(blob[8:8+headerSize], &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	f := &File{header: header, data: blob[8+headerSize:]}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFile reads and parses a SafeTensors file.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: weights path is user input by design
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights: %w", err)
	}
	return Parse(blob)
}

// validate checks every tensor entry against the data section.
func (f *File) validate() error {
	type span struct {
		name       string
		start, end int64
	}
	spans := make([]span, 0, len(f.header.Tensors))
	dataLen := int64(len(f.data))

	for _, name := range f.Names() {
		info := f.header.Tensors[name]
		if _, err := info.DType.target(); err != nil {
			return &ValidationError{Err: ErrUnsupportedDType, Tensor: name, Details: string(info.DType)}
		}
		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start {
			return &ValidationError{Err: ErrNegativeOffset, Tensor: name, Details: fmt.Sprintf("[%d, %d]", start, end)}
		}
		if end > dataLen {
			return &ValidationError{Err: ErrOutOfBounds, Tensor: name, Details: fmt.Sprintf("ends at %d, data section is %d bytes", end, dataLen)}
		}
		want, err := info.byteSize()
		if err != nil {
			return &ValidationError{Err: err, Tensor: name, Details: fmt.Sprintf("%s%v", info.DType, info.Shape)}
		}
		if end-start != want {
			return &ValidationError{Err: ErrSizeMismatch, Tensor: name, Details: fmt.Sprintf("%s%v needs %d bytes, got %d", info.DType, info.Shape, want, end-start)}
		}
		spans = append(spans, span{name: name, start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  spans[i-1].name,
				Tensor2: spans[i].name,
				Details: fmt.Sprintf("[%d, %d) and [%d, %d)", spans[i-1].start, spans[i-1].end, spans[i].start, spans[i].end),
			}
		}
	}
	return nil
}

// Metadata returns the metadata map from the header.
func (f *File) Metadata() map[string]string {
	return f.header.Metadata
}

// Names returns all tensor names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.header.Tensors))
	for name := range f.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the header entry of a tensor.
func (f *File) Info(name string) (TensorInfo, error) {
	info, ok := f.header.Tensors[name]
	if !ok {
		return TensorInfo{}, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
	}
	return info, nil
}

// Tensor materializes one tensor. F16 and BF16 are widened to float32; the
// result owns its memory.
func (f *File) Tensor(name string) (*tensor.RawTensor, error) {
	info, err := f.Info(name)
	if err != nil {
		return nil, err
	}

	dtype, err := info.DType.target()
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(tensor.Shape(info.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", name, err)
	}

	src := f.data[info.DataOffsets[0]:info.DataOffsets[1]]
	switch info.DType {
	case F16:
		widen(raw.AsFloat32(), src, float16ToFloat32)
	case BF16:
		widen(raw.AsFloat32(), src, bfloat16ToFloat32)
	default:
		copy(raw.Data(), src)
	}

	return raw, nil
}

// Store materializes every tensor into a params.MapStore.
func (f *File) Store() (params.MapStore, error) {
	store := make(params.MapStore, len(f.header.Tensors))
	for _, name := range f.Names() {
		raw, err := f.Tensor(name)
		if err != nil {
			return nil, err
		}
		store[name] = raw
	}
	return store, nil
}

// Load parses a SafeTensors blob into a parameter store.
//
// Example:
//
//	//go:embed dehazer.safetensors
//	var weights []byte
//
//	store, err := safetensors.Load(weights)
func Load(blob []byte) (params.MapStore, error) {
	f, err := Parse(blob)
	if err != nil {
		return nil, err
	}
	return f.Store()
}

// LoadFile reads a SafeTensors file into a parameter store.
func LoadFile(path string) (params.MapStore, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Store()
}
