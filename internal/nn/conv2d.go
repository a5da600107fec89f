package nn

import (
	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

// Conv2D is a 2D convolutional layer with fixed weights.
//
// Performs convolution: output = Conv2D(input, weight) + bias
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel, kernel]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel) / stride + 1
//	out_w = (width + 2*padding - kernel) / stride + 1
//
// Example:
//
//	spec := nn.LayerSpec{Name: "e_conv2", InChannels: 3, OutChannels: 3, Kernel: 3, Padding: 1, Stride: 1}
//	conv, err := nn.NewConv2D(spec, params.Scope(store, spec.Name), backend)
//	out, err := conv.Forward(x) // [N, 3, H, W]
type Conv2D[B tensor.Backend] struct {
	spec LayerSpec

	weight *Parameter[B]              // [out_channels, in_channels, kernel, kernel]
	bias   *Parameter[B]              // [out_channels]
	biasBC *tensor.Tensor[float32, B] // bias viewed as [1, out_channels, 1, 1]

	backend B
}

// NewConv2D builds a convolution from spec, reading "weight" and "bias" from
// store (already scoped to the layer).
func NewConv2D[B tensor.Backend](spec LayerSpec, store params.Store, backend B) (*Conv2D[B], error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	weight, err := LoadParameter(store, "weight", spec.WeightShape(), backend)
	if err != nil {
		return nil, err
	}
	bias, err := LoadParameter(store, "bias", spec.BiasShape(), backend)
	if err != nil {
		return nil, err
	}

	// Reshape once for broadcasting over [N, C_out, H, W].
	biasBC, err := bias.Tensor().Reshape(1, spec.OutChannels, 1, 1)
	if err != nil {
		return nil, err
	}

	return &Conv2D[B]{
		spec:    spec,
		weight:  weight,
		bias:    bias,
		biasBC:  biasBC,
		backend: backend,
	}, nil
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
//
// An input whose rank or channel count does not match the layer fails with an
// error wrapping tensor.ErrShapeMismatch.
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		return nil, tensor.NewShapeError(c.spec.Name, "expected 4D input [N,C,H,W], got %dD %v", len(inputShape), inputShape)
	}
	if inputShape[1] != c.spec.InChannels {
		return nil, tensor.NewShapeError(c.spec.Name, "input channels %d != expected %d", inputShape[1], c.spec.InChannels)
	}

	out, err := input.Conv2D(c.weight.Tensor(), c.spec.Stride, c.spec.Padding)
	if err != nil {
		return nil, err
	}
	return out.Add(c.biasBC)
}

// Spec returns the layer descriptor.
func (c *Conv2D[B]) Spec() LayerSpec {
	return c.spec
}

// Weight returns the convolution kernel.
func (c *Conv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias vector.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return c.spec.String()
}
