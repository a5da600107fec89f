// Package imageproc converts between interleaved 8-bit RGB buffers and the
// normalized [N, 3, H, W] float32 tensors DehazeNet consumes and produces.
package imageproc

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/born-ml/dehaze/internal/tensor"
)

// Channels is the number of interleaved samples per pixel.
const Channels = 3

// Preprocess turns an (H, W, 3) uint8 buffer into a (1, 3, H, W) float32
// tensor with values in [0, 1].
//
// Pipeline: cast to float32 -> divide by 255 -> permute (2, 0, 1) -> unsqueeze 0.
//
// A buffer whose length is not height*width*3 fails with an error wrapping
// tensor.ErrShapeMismatch.
func Preprocess[B tensor.Backend](buf []uint8, height, width int, backend B) (*tensor.Tensor[float32, B], error) {
	if height <= 0 || width <= 0 {
		return nil, tensor.NewShapeError("preprocess", "invalid image size %dx%d", width, height)
	}
	if want := height * width * Channels; len(buf) != want {
		return nil, tensor.NewShapeError("preprocess", "buffer holds %d bytes, want %d for %dx%dx%d",
			len(buf), want, height, width, Channels)
	}

	pixels, err := tensor.FromSlice(buf, tensor.Shape{height, width, Channels}, backend)
	if err != nil {
		return nil, err
	}
	x, err := tensor.Cast[float32](pixels)
	if err != nil {
		return nil, err
	}
	if x, err = x.DivScalar(255); err != nil {
		return nil, err
	}
	if x, err = x.Permute(2, 0, 1); err != nil {
		return nil, err
	}
	return x.Unsqueeze(0)
}

// Postprocess turns a (1, 3, H, W) or (3, H, W) float32 tensor back into an
// interleaved (H, W, 3) uint8 buffer.
//
// Pipeline: squeeze batch -> permute (1, 2, 0) -> flatten -> clamp [0, 1] ->
// multiply by 255 -> truncate to uint8. Out-of-range values saturate; NaN
// becomes 0.
func Postprocess[B tensor.Backend](t *tensor.Tensor[float32, B]) (buf []uint8, height, width int, err error) {
	shape := t.Shape()
	switch len(shape) {
	case 4:
		if shape[0] != 1 {
			return nil, 0, 0, tensor.NewShapeError("postprocess", "batch size %d, want 1 (use PostprocessBatch)", shape[0])
		}
		if t, err = t.Squeeze(0); err != nil {
			return nil, 0, 0, err
		}
	case 3:
	default:
		return nil, 0, 0, tensor.NewShapeError("postprocess", "expected [1, 3, H, W] or [3, H, W], got %v", shape)
	}
	return toPixels(t)
}

// PostprocessBatch applies Postprocess to every image of an (N, 3, H, W)
// tensor. All images share the returned height and width.
func PostprocessBatch[B tensor.Backend](t *tensor.Tensor[float32, B]) (bufs [][]uint8, height, width int, err error) {
	shape := t.Shape()
	if len(shape) != 4 {
		return nil, 0, 0, tensor.NewShapeError("postprocess_batch", "expected [N, 3, H, W], got %v", shape)
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	raw := t.Raw()
	data := raw.Data()
	stride := c * h * w * tensor.Float32.Size()

	bufs = make([][]uint8, n)
	for i := 0; i < n; i++ {
		img, err := tensor.NewRaw(tensor.Shape{c, h, w}, tensor.Float32, raw.Device())
		if err != nil {
			return nil, 0, 0, err
		}
		copy(img.Data(), data[i*stride:(i+1)*stride])

		single, err := tensor.FromRaw[float32](img, t.Backend())
		if err != nil {
			return nil, 0, 0, err
		}
		if bufs[i], height, width, err = toPixels(single); err != nil {
			return nil, 0, 0, err
		}
	}
	return bufs, height, width, nil
}

// toPixels converts a [3, H, W] tensor to an interleaved uint8 buffer.
func toPixels[B tensor.Backend](t *tensor.Tensor[float32, B]) ([]uint8, int, int, error) {
	shape := t.Shape()
	if shape[0] != Channels {
		return nil, 0, 0, tensor.NewShapeError("postprocess", "expected %d channels, got %v", Channels, shape)
	}
	height, width := shape[1], shape[2]

	hwc, err := t.Permute(1, 2, 0)
	if err != nil {
		return nil, 0, 0, err
	}
	flat, err := hwc.Flatten()
	if err != nil {
		return nil, 0, 0, err
	}
	clamped, err := flat.Clamp(0, 1)
	if err != nil {
		return nil, 0, 0, err
	}
	scaled, err := clamped.MulScalar(255)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels, err := tensor.Cast[uint8](scaled)
	if err != nil {
		return nil, 0, 0, err
	}
	return pixels.Data(), height, width, nil
}

// FromImage flattens img into an interleaved RGB buffer. The image is first
// normalized to non-premultiplied RGBA and the alpha channel is dropped.
func FromImage(img image.Image) (buf []uint8, height, width int) {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	buf = make([]uint8, 0, width*height*Channels)
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			buf = append(buf, row[4*x], row[4*x+1], row[4*x+2])
		}
	}
	return buf, height, width
}

// ToImage builds an opaque image from an interleaved RGB buffer.
func ToImage(buf []uint8, height, width int) (*image.NRGBA, error) {
	if height <= 0 || width <= 0 || len(buf) != height*width*Channels {
		return nil, tensor.NewShapeError("to_image", "buffer holds %d bytes, want %dx%dx%d",
			len(buf), height, width, Channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(buf); i, j = i+Channels, j+4 {
		img.Pix[j] = buf[i]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}
