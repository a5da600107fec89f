// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dehaze

import (
	"github.com/born-ml/dehaze/internal/imageio"
	"github.com/born-ml/dehaze/internal/imageproc"
	"github.com/born-ml/dehaze/internal/model"
	"github.com/born-ml/dehaze/internal/nn"
	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/pipeline"
	"github.com/born-ml/dehaze/internal/safetensors"
	"github.com/born-ml/dehaze/tensor"
)

// Model is the DehazeNet network bound to backend B.
type Model[B tensor.Backend] = model.DehazeNet[B]

// LayerSpec describes one convolution of the network.
type LayerSpec = nn.LayerSpec

// Dehazer runs a Model over buffers, images and files.
type Dehazer[B tensor.Backend] = pipeline.Dehazer[B]

// Options controls batch processing.
type Options = pipeline.Options

// Result reports the outcome for one input file.
type Result = pipeline.Result

// Store resolves parameter names such as "e_conv1.weight" to tensors.
type Store = params.Store

// MapStore is an in-memory Store.
type MapStore = params.MapStore

// ConstructionError reports which layer could not be built.
type ConstructionError = model.ConstructionError

// MissingError reports the name of a parameter absent from a Store.
type MissingError = params.MissingError

// Sentinel errors.
var (
	ErrMissingParameter = params.ErrMissingParameter
	ErrShapeMismatch    = tensor.ErrShapeMismatch
)

// DefaultSuffix is appended to output file names by default.
const DefaultSuffix = pipeline.DefaultSuffix

// DefaultOptions returns the default batch options.
func DefaultOptions() Options {
	return pipeline.DefaultOptions()
}

// Specs returns the network topology in invocation order.
func Specs() []LayerSpec {
	return model.Specs()
}

// LoadWeights reads a SafeTensors file into an in-memory store.
// F16 and BF16 tensors are widened to float32.
func LoadWeights(path string) (MapStore, error) {
	return safetensors.LoadFile(path)
}

// ParseWeights decodes a SafeTensors blob, e.g. one embedded with go:embed.
func ParseWeights(blob []byte) (MapStore, error) {
	return safetensors.Load(blob)
}

// SaveWeights writes a store as a SafeTensors file.
func SaveWeights(path string, store MapStore) error {
	return safetensors.WriteFile(path, store, map[string]string{"format": "pt"})
}

// NewModel builds the network from store.
//
// Errors are *ConstructionError values wrapping ErrMissingParameter or
// ErrShapeMismatch.
func NewModel[B tensor.Backend](store Store, backend B) (*Model[B], error) {
	return model.New(store, backend)
}

// New wraps a built model in a Dehazer.
func New[B tensor.Backend](net *Model[B], opts Options) *Dehazer[B] {
	return pipeline.New(net, opts)
}

// Open loads weights from path, builds the model and wraps it in a Dehazer.
func Open[B tensor.Backend](weightsPath string, backend B, opts Options) (*Dehazer[B], error) {
	store, err := LoadWeights(weightsPath)
	if err != nil {
		return nil, err
	}
	net, err := NewModel(store, backend)
	if err != nil {
		return nil, err
	}
	return New(net, opts), nil
}

// Preprocess converts an (H, W, 3) uint8 buffer into a (1, 3, H, W) tensor.
func Preprocess[B tensor.Backend](buf []uint8, height, width int, backend B) (*tensor.Tensor[float32, B], error) {
	return imageproc.Preprocess(buf, height, width, backend)
}

// Postprocess converts a (1, 3, H, W) or (3, H, W) tensor into an (H, W, 3)
// uint8 buffer.
func Postprocess[B tensor.Backend](t *tensor.Tensor[float32, B]) ([]uint8, int, int, error) {
	return imageproc.Postprocess(t)
}

// ReadImage decodes an image file into an interleaved RGB buffer.
func ReadImage(path string) ([]uint8, int, int, error) {
	return imageio.Open(path)
}

// WriteImage encodes an interleaved RGB buffer; the format follows the
// file extension.
func WriteImage(path string, buf []uint8, height, width int) error {
	return imageio.Save(path, buf, height, width)
}

// OutputPath returns where ProcessFiles writes the result for src.
func OutputPath(outDir, src, suffix string) string {
	return pipeline.OutputPath(outDir, src, suffix)
}
