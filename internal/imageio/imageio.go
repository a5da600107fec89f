// Package imageio reads and writes image files as interleaved RGB buffers.
//
// The format is chosen from the file extension (PNG, JPEG, GIF, BMP, TIFF).
package imageio

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/born-ml/dehaze/internal/imageproc"
)

// JPEGQuality is used when saving .jpg/.jpeg files.
const JPEGQuality = 95

// Open decodes the image at path into an interleaved RGB buffer. EXIF
// orientation is applied so the buffer matches how the image is displayed.
func Open(path string) (buf []uint8, height, width int, err error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, errors.Wrapf(err, "unable to open image %q", path)
	}
	buf, height, width = imageproc.FromImage(img)
	if height == 0 || width == 0 {
		return nil, 0, 0, errors.Errorf("image %q is empty", path)
	}
	return buf, height, width, nil
}

// Save encodes an interleaved RGB buffer to path, creating parent
// directories as needed.
func Save(path string, buf []uint8, height, width int) error {
	img, err := imageproc.ToImage(buf, height, width)
	if err != nil {
		return errors.Wrapf(err, "unable to build image for %q", path)
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.Wrapf(err, "unable to save image %q", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create directory %q", dir)
		}
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return errors.Wrapf(err, "unable to save image %q", path)
	}
	return nil
}
