package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/internal/tensor"
)

func TestCat_ChannelAxis(t *testing.T) {
	backend := New()
	// Two [1, 2, 1, 2] tensors along dim 1 -> [1, 4, 1, 2]
	a := rawF32(t, tensor.Shape{1, 2, 1, 2}, 1, 2, 3, 4)
	b := rawF32(t, tensor.Shape{1, 2, 1, 2}, 5, 6, 7, 8)

	out, err := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 4, 1, 2}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, out.AsFloat32())
}

func TestCat_BatchedKeepsOrder(t *testing.T) {
	backend := New()
	// Batch 2: channels of each sample stay grouped per sample.
	a := rawF32(t, tensor.Shape{2, 1, 1, 1}, 1, 2)
	b := rawF32(t, tensor.Shape{2, 2, 1, 1}, 10, 11, 20, 21)
	c := rawF32(t, tensor.Shape{2, 1, 1, 1}, 100, 200)

	out, err := backend.Cat([]*tensor.RawTensor{a, b, c}, 1)
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 4, 1, 1}))
	assert.Equal(t, []float32{1, 10, 11, 100, 2, 20, 21, 200}, out.AsFloat32())
}

func TestCat_NegativeDim(t *testing.T) {
	backend := New()
	a := rawF32(t, tensor.Shape{2, 1}, 1, 2)
	b := rawF32(t, tensor.Shape{2, 2}, 3, 4, 5, 6)

	out, err := backend.Cat([]*tensor.RawTensor{a, b}, -1)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 4, 2, 5, 6}, out.AsFloat32())
}

func TestCat_Errors(t *testing.T) {
	backend := New()
	a := rawF32(t, tensor.Shape{1, 2, 2, 2}, make([]float32, 8)...)
	b := rawF32(t, tensor.Shape{1, 2, 3, 2}, make([]float32, 12)...)

	_, err := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = backend.Cat(nil, 1)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = backend.Cat([]*tensor.RawTensor{a}, 4)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestTranspose_HWCToCHW(t *testing.T) {
	backend := New()
	// [H=1, W=2, C=3]: pixel0 = (1,2,3), pixel1 = (4,5,6)
	hwc := rawF32(t, tensor.Shape{1, 2, 3}, 1, 2, 3, 4, 5, 6)

	chw, err := backend.Transpose(hwc, 2, 0, 1)
	require.NoError(t, err)
	assert.True(t, chw.Shape().Equal(tensor.Shape{3, 1, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, chw.AsFloat32())

	back, err := backend.Transpose(chw, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, hwc.AsFloat32(), back.AsFloat32())
}

func TestTranspose_Uint8AndDefault(t *testing.T) {
	backend := New()
	m, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)
	copy(m.AsUint8(), []uint8{1, 2, 3, 4, 5, 6})

	mt, err := backend.Transpose(m)
	require.NoError(t, err)
	assert.True(t, mt.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []uint8{1, 4, 2, 5, 3, 6}, mt.AsUint8())
}

func TestTranspose_InvalidAxes(t *testing.T) {
	backend := New()
	x := rawF32(t, tensor.Shape{2, 2}, 1, 2, 3, 4)

	_, err := backend.Transpose(x, 0, 0)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = backend.Transpose(x, 0, 1, 2)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = backend.Transpose(x, 0, 5)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSqueezeUnsqueeze(t *testing.T) {
	backend := New()
	x := rawF32(t, tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)

	u, err := backend.Unsqueeze(x, 0)
	require.NoError(t, err)
	assert.True(t, u.Shape().Equal(tensor.Shape{1, 3, 2}))

	last, err := backend.Unsqueeze(x, -1)
	require.NoError(t, err)
	assert.True(t, last.Shape().Equal(tensor.Shape{3, 2, 1}))

	s, err := backend.Squeeze(u, 0)
	require.NoError(t, err)
	assert.True(t, s.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, x.AsFloat32(), s.AsFloat32())

	_, err = backend.Squeeze(x, 0)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = backend.Unsqueeze(x, 4)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestReshape(t *testing.T) {
	backend := New()
	x := rawF32(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	r, err := backend.Reshape(x, tensor.Shape{3, 2})
	require.NoError(t, err)
	assert.True(t, r.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, x.AsFloat32(), r.AsFloat32())

	_, err = backend.Reshape(x, tensor.Shape{4, 2})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
