// Package model defines DehazeNet, the five-layer dense-concatenation
// convolutional network that estimates a haze-free image from a hazy one.
package model

import (
	"fmt"
	"strings"

	"github.com/born-ml/dehaze/internal/nn"
	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

// Channels is the number of color channels the network consumes and produces.
const Channels = 3

// specs is the fixed topology. Every convolution preserves H and W.
var specs = [...]nn.LayerSpec{
	{Name: "e_conv1", InChannels: 3, OutChannels: 3, Kernel: 1, Padding: 0, Stride: 1},
	{Name: "e_conv2", InChannels: 3, OutChannels: 3, Kernel: 3, Padding: 1, Stride: 1},
	{Name: "e_conv3", InChannels: 6, OutChannels: 3, Kernel: 5, Padding: 2, Stride: 1},
	{Name: "e_conv4", InChannels: 6, OutChannels: 3, Kernel: 7, Padding: 3, Stride: 1},
	{Name: "e_conv5", InChannels: 12, OutChannels: 3, Kernel: 3, Padding: 1, Stride: 1},
}

// Specs returns a copy of the layer descriptors in invocation order.
func Specs() []nn.LayerSpec {
	out := make([]nn.LayerSpec, len(specs))
	copy(out, specs[:])
	return out
}

// DehazeNet is the dehazing network.
//
// Architecture (all convolutions followed by ReLU):
//
//	x1 = conv1(x)
//	x2 = conv2(x1)
//	x3 = conv3(cat[x1, x2])
//	x4 = conv4(cat[x2, x3])
//	x5 = conv5(cat[x1, x2, x3, x4])
//	out = relu(x5*x - x5 + 1)
//
// x5 acts as a per-pixel transmission map inverting the atmospheric
// scattering model. The output is only clamped from below; values above 1 are
// left for postprocessing to saturate.
//
// A DehazeNet holds only immutable tensors, so Forward may be called from
// multiple goroutines at once.
type DehazeNet[B tensor.Backend] struct {
	conv1 *nn.Conv2D[B]
	conv2 *nn.Conv2D[B]
	conv3 *nn.Conv2D[B]
	conv4 *nn.Conv2D[B]
	conv5 *nn.Conv2D[B]

	backend B
}

// New builds a DehazeNet from the ten tensors e_convK.weight / e_convK.bias.
//
// Failures are returned as *ConstructionError naming the layer; the wrapped
// error matches params.ErrMissingParameter or tensor.ErrShapeMismatch.
//
// Example:
//
//	store, err := safetensors.LoadFile("dehazer.safetensors")
//	net, err := model.New(store, cpu.New())
func New[B tensor.Backend](store params.Store, backend B) (*DehazeNet[B], error) {
	var layers [len(specs)]*nn.Conv2D[B]
	for i, spec := range specs {
		conv, err := nn.NewConv2D(spec, params.Scope(store, spec.Name), backend)
		if err != nil {
			return nil, &ConstructionError{Layer: spec.Name, Err: err}
		}
		layers[i] = conv
	}

	return &DehazeNet[B]{
		conv1:   layers[0],
		conv2:   layers[1],
		conv3:   layers[2],
		conv4:   layers[3],
		conv5:   layers[4],
		backend: backend,
	}, nil
}

// Forward runs the network on x of shape [N, 3, H, W] and returns a tensor of
// the same shape.
//
// Input with the wrong rank or channel count fails with an error wrapping
// tensor.ErrShapeMismatch.
func (m *DehazeNet[B]) Forward(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := x.Shape()
	if len(shape) != 4 || shape[1] != Channels {
		return nil, tensor.NewShapeError("dehazenet", "expected input [N, %d, H, W], got %v", Channels, shape)
	}

	x1, err := convReLU(m.conv1, x)
	if err != nil {
		return nil, err
	}
	x2, err := convReLU(m.conv2, x1)
	if err != nil {
		return nil, err
	}
	x3, err := catConvReLU(m.conv3, x1, x2)
	if err != nil {
		return nil, err
	}
	x4, err := catConvReLU(m.conv4, x2, x3)
	if err != nil {
		return nil, err
	}
	x5, err := catConvReLU(m.conv5, x1, x2, x3, x4)
	if err != nil {
		return nil, err
	}

	return recombine(x5, x)
}

// recombine computes relu(k*x - k + 1).
func recombine[B tensor.Backend](k, x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	kx, err := k.Mul(x)
	if err != nil {
		return nil, err
	}
	diff, err := kx.Sub(k)
	if err != nil {
		return nil, err
	}
	shifted, err := diff.AddScalar(1)
	if err != nil {
		return nil, err
	}
	return shifted.ReLU()
}

func convReLU[B tensor.Backend](conv *nn.Conv2D[B], x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	out, err := conv.Forward(x)
	if err != nil {
		return nil, err
	}
	return out.ReLU()
}

// catConvReLU concatenates inputs along the channel axis before convolving.
func catConvReLU[B tensor.Backend](conv *nn.Conv2D[B], inputs ...*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	joined, err := tensor.Cat(inputs, 1)
	if err != nil {
		return nil, err
	}
	return convReLU(conv, joined)
}

// Layers returns the convolutions in invocation order.
func (m *DehazeNet[B]) Layers() []*nn.Conv2D[B] {
	return []*nn.Conv2D[B]{m.conv1, m.conv2, m.conv3, m.conv4, m.conv5}
}

// Parameters returns every weight and bias, layer by layer.
func (m *DehazeNet[B]) Parameters() []*nn.Parameter[B] {
	var out []*nn.Parameter[B]
	for _, layer := range m.Layers() {
		out = append(out, layer.Weight(), layer.Bias())
	}
	return out
}

// Backend returns the backend the network computes on.
func (m *DehazeNet[B]) Backend() B {
	return m.backend
}

// String returns a string representation of the network.
func (m *DehazeNet[B]) String() string {
	var sb strings.Builder
	sb.WriteString("DehazeNet(\n")
	for _, layer := range m.Layers() {
		fmt.Fprintf(&sb, "  (%s): %s\n", layer.Spec().Name, layer)
	}
	sb.WriteString(")")
	return sb.String()
}
