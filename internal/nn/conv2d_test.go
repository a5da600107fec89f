package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/internal/backend/cpu"
	"github.com/born-ml/dehaze/internal/nn"
	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

func rawFull(t *testing.T, shape tensor.Shape, value float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return raw
}

func TestLayerSpec_Shapes(t *testing.T) {
	spec := nn.LayerSpec{Name: "e_conv3", InChannels: 6, OutChannels: 3, Kernel: 5, Padding: 2, Stride: 1}

	assert.Equal(t, tensor.Shape{3, 6, 5, 5}, spec.WeightShape())
	assert.Equal(t, tensor.Shape{3}, spec.BiasShape())
	assert.Equal(t, [2]int{7, 9}, spec.OutputSize(7, 9))
	assert.Equal(t, "Conv2D(in_channels=6, out_channels=3, kernel_size=(5, 5), stride=1, padding=2)", spec.String())
	require.NoError(t, spec.Validate())

	bad := spec
	bad.Stride = 0
	require.Error(t, bad.Validate())
}

func TestConv2D_ForwardAddsBias(t *testing.T) {
	backend := cpu.New()
	spec := nn.LayerSpec{Name: "conv", InChannels: 1, OutChannels: 2, Kernel: 3, Padding: 1, Stride: 1}
	store := params.MapStore{
		"conv.weight": rawFull(t, spec.WeightShape(), 1),
		"conv.bias":   rawFull(t, spec.BiasShape(), 0.5),
	}

	conv, err := nn.NewConv2D(spec, params.Scope(store, "conv"), backend)
	require.NoError(t, err)
	assert.Equal(t, spec, conv.Spec())
	assert.Equal(t, "weight", conv.Weight().Name())
	assert.Equal(t, "bias", conv.Bias().Name())

	x, err := tensor.Full[float32](tensor.Shape{1, 1, 3, 3}, 1, backend)
	require.NoError(t, err)

	out, err := conv.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 3, 3}, out.Shape())

	// Ones kernel over ones input counts the in-bounds taps.
	for c := 0; c < 2; c++ {
		assert.InDelta(t, 4.5, out.At(0, c, 0, 0), 1e-6) // corner
		assert.InDelta(t, 6.5, out.At(0, c, 0, 1), 1e-6) // edge
		assert.InDelta(t, 9.5, out.At(0, c, 1, 1), 1e-6) // center
	}
}

func TestConv2D_ForwardShapeErrors(t *testing.T) {
	backend := cpu.New()
	spec := nn.LayerSpec{Name: "conv", InChannels: 3, OutChannels: 3, Kernel: 1, Stride: 1}
	store := params.MapStore{
		"weight": rawFull(t, spec.WeightShape(), 1),
		"bias":   rawFull(t, spec.BiasShape(), 0),
	}
	conv, err := nn.NewConv2D(spec, store, backend)
	require.NoError(t, err)

	wrongChannels, err := tensor.Zeros[float32](tensor.Shape{1, 4, 2, 2}, backend)
	require.NoError(t, err)
	_, err = conv.Forward(wrongChannels)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	wrongRank, err := tensor.Zeros[float32](tensor.Shape{3, 2, 2}, backend)
	require.NoError(t, err)
	_, err = conv.Forward(wrongRank)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNewConv2D_ParameterErrors(t *testing.T) {
	backend := cpu.New()
	spec := nn.LayerSpec{Name: "conv", InChannels: 3, OutChannels: 3, Kernel: 3, Padding: 1, Stride: 1}

	t.Run("missing bias", func(t *testing.T) {
		store := params.MapStore{"conv.weight": rawFull(t, spec.WeightShape(), 0)}
		_, err := nn.NewConv2D(spec, params.Scope(store, "conv"), backend)
		require.ErrorIs(t, err, params.ErrMissingParameter)

		var missing *params.MissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "conv.bias", missing.Name)
	})

	t.Run("wrong weight shape", func(t *testing.T) {
		store := params.MapStore{
			"conv.weight": rawFull(t, tensor.Shape{3, 3, 5, 5}, 0),
			"conv.bias":   rawFull(t, spec.BiasShape(), 0),
		}
		_, err := nn.NewConv2D(spec, params.Scope(store, "conv"), backend)
		require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})

	t.Run("wrong dtype", func(t *testing.T) {
		raw, err := tensor.NewRaw(spec.BiasShape(), tensor.Uint8, tensor.CPU)
		require.NoError(t, err)
		store := params.MapStore{
			"conv.weight": rawFull(t, spec.WeightShape(), 0),
			"conv.bias":   raw,
		}
		_, err = nn.NewConv2D(spec, params.Scope(store, "conv"), backend)
		require.ErrorIs(t, err, tensor.ErrDTypeMismatch)
	})
}
