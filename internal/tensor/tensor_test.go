package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/internal/backend/cpu"
	"github.com/born-ml/dehaze/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice[float32]([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.True(t, x.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))
	assert.Equal(t, "Tensor[float32][2 3] on CPU", x.String())

	_, err = tensor.FromSlice[float32]([]float32{1, 2}, tensor.Shape{2, 3}, backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = tensor.FromSlice[uint8]([]uint8{}, tensor.Shape{0, 3}, backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestFullAndZeros(t *testing.T) {
	backend := cpu.New()

	z, err := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0}, z.Data())

	f, err := tensor.Full[uint8](tensor.Shape{3}, 7, backend)
	require.NoError(t, err)
	assert.Equal(t, []uint8{7, 7, 7}, f.Data())
}

func TestFromRaw_DTypeCheck(t *testing.T) {
	backend := cpu.New()
	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)

	_, err = tensor.FromRaw[float32](raw, backend)
	require.ErrorIs(t, err, tensor.ErrDTypeMismatch)

	u, err := tensor.FromRaw[uint8](raw, backend)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0}, u.Data())
}

func TestOps_Immutable(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice[float32]([]float32{-1, 0, 2}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	before := append([]float32(nil), x.Data()...)

	y, err := x.AddScalar(1)
	require.NoError(t, err)
	y, err = y.Mul(x)
	require.NoError(t, err)
	y, err = y.ReLU()
	require.NoError(t, err)

	assert.Equal(t, before, x.Data(), "input must not change")
	assert.Equal(t, []float32{0, 0, 6}, y.Data())
}

func TestCatAndPermute(t *testing.T) {
	backend := cpu.New()
	a, err := tensor.FromSlice[float32]([]float32{1, 2}, tensor.Shape{1, 1, 1, 2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice[float32]([]float32{3, 4}, tensor.Shape{1, 1, 1, 2}, backend)
	require.NoError(t, err)

	c, err := tensor.Cat([]*tensor.Tensor[float32, *cpu.CPUBackend]{a, b}, 1)
	require.NoError(t, err)
	assert.True(t, c.Shape().Equal(tensor.Shape{1, 2, 1, 2}))

	s, err := c.Squeeze(0)
	require.NoError(t, err)
	p, err := s.Permute(1, 2, 0)
	require.NoError(t, err)
	assert.True(t, p.Shape().Equal(tensor.Shape{1, 2, 2}))
	assert.Equal(t, []float32{1, 3, 2, 4}, p.Data())

	flat, err := p.Flatten()
	require.NoError(t, err)
	assert.True(t, flat.Shape().Equal(tensor.Shape{4}))

	_, err = tensor.Cat[float32, *cpu.CPUBackend](nil, 1)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestCast(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice[float32]([]float32{-0.5, 12.7, 300}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	u, err := tensor.Cast[uint8](x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, u.DType())
	assert.Equal(t, []uint8{0, 12, 255}, u.Data())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      tensor.Shape
		want      tensor.Shape
		broadcast bool
		wantErr   bool
	}{
		{tensor.Shape{3, 1}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{tensor.Shape{3, 5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, false, false},
		{tensor.Shape{1, 3, 4, 4}, tensor.Shape{}, tensor.Shape{1, 3, 4, 4}, true, false},
		{tensor.Shape{1, 3, 1, 1}, tensor.Shape{2, 3, 4, 4}, tensor.Shape{2, 3, 4, 4}, true, false},
		{tensor.Shape{3, 4}, tensor.Shape{3, 5}, nil, false, true},
	}

	for _, tc := range tests {
		got, broadcast, err := tensor.BroadcastShapes(tc.a, tc.b)
		if tc.wantErr {
			require.ErrorIs(t, err, tensor.ErrShapeMismatch)
			continue
		}
		require.NoError(t, err)
		assert.True(t, got.Equal(tc.want), "%v + %v: got %v", tc.a, tc.b, got)
		assert.Equal(t, tc.broadcast, broadcast, "%v + %v", tc.a, tc.b)
	}
}

func TestShapeError_Message(t *testing.T) {
	err := tensor.NewShapeError("conv2d", "input channels %d != kernel channels %d", 4, 3)
	assert.Equal(t, "conv2d: shape mismatch: input channels 4 != kernel channels 3", err.Error())
}
