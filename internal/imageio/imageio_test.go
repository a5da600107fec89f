package imageio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/internal/imageio"
)

func TestSaveOpen_PNG(t *testing.T) {
	buf := []uint8{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 128, 128, 128,
	}
	path := filepath.Join(t.TempDir(), "nested", "out.png")

	require.NoError(t, imageio.Save(path, buf, 2, 2))

	got, h, w, err := imageio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, h)
	assert.Equal(t, 2, w)
	assert.Equal(t, buf, got)
}

func TestSave_JPEG(t *testing.T) {
	buf := make([]uint8, 8*8*3)
	for i := range buf {
		buf[i] = 200
	}
	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, imageio.Save(path, buf, 8, 8))

	got, h, w, err := imageio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 8, w)
	for _, v := range got {
		assert.InDelta(t, 200, int(v), 3) // lossy
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, _, err := imageio.Open(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o600))
	_, _, _, err = imageio.Open(garbage)
	require.Error(t, err)
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	err := imageio.Save(filepath.Join(dir, "out.xyz"), make([]uint8, 3), 1, 1)
	require.Error(t, err)

	err = imageio.Save(filepath.Join(dir, "out.png"), make([]uint8, 5), 1, 1)
	require.Error(t, err)
}
