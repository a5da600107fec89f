// Package nn implements the inference-only layers the dehazing network is
// built from.
//
// Layers are described by plain LayerSpec records and materialized from a
// params.Store; nothing here allocates random weights or tracks gradients.
package nn

import (
	"fmt"

	"github.com/born-ml/dehaze/internal/tensor"
)

// LayerSpec describes one square-kernel 2D convolution.
type LayerSpec struct {
	Name        string // Parameter scope, e.g. "e_conv3"
	InChannels  int
	OutChannels int
	Kernel      int // Square kernel size
	Padding     int // Zero padding on every side
	Stride      int
}

// WeightShape returns [out_channels, in_channels, kernel, kernel].
func (s LayerSpec) WeightShape() tensor.Shape {
	return tensor.Shape{s.OutChannels, s.InChannels, s.Kernel, s.Kernel}
}

// BiasShape returns [out_channels].
func (s LayerSpec) BiasShape() tensor.Shape {
	return tensor.Shape{s.OutChannels}
}

// Validate checks that s describes a buildable convolution.
func (s LayerSpec) Validate() error {
	if s.InChannels <= 0 || s.OutChannels <= 0 {
		return fmt.Errorf("%s: invalid channels in=%d, out=%d", s.Name, s.InChannels, s.OutChannels)
	}
	if s.Kernel <= 0 {
		return fmt.Errorf("%s: invalid kernel size %d", s.Name, s.Kernel)
	}
	if s.Stride <= 0 {
		return fmt.Errorf("%s: invalid stride %d", s.Name, s.Stride)
	}
	if s.Padding < 0 {
		return fmt.Errorf("%s: invalid padding %d", s.Name, s.Padding)
	}
	return nil
}

// OutputSize computes output spatial dimensions for a given input size.
//
// Returns: [out_height, out_width].
func (s LayerSpec) OutputSize(inputH, inputW int) [2]int {
	outH := (inputH+2*s.Padding-s.Kernel)/s.Stride + 1
	outW := (inputW+2*s.Padding-s.Kernel)/s.Stride + 1
	return [2]int{outH, outW}
}

// String renders the layer like a PyTorch module repr.
func (s LayerSpec) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d)",
		s.InChannels, s.OutChannels, s.Kernel, s.Kernel, s.Stride, s.Padding)
}
