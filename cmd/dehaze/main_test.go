package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/dehaze"
	"github.com/born-ml/dehaze/tensor"
)

func writeZeroWeights(t *testing.T, path string) {
	t.Helper()
	store := make(dehaze.MapStore)
	for _, spec := range dehaze.Specs() {
		w, err := tensor.NewRaw(spec.WeightShape(), tensor.Float32, tensor.CPU)
		require.NoError(t, err)
		b, err := tensor.NewRaw(spec.BiasShape(), tensor.Float32, tensor.CPU)
		require.NoError(t, err)
		store[spec.Name+".weight"] = w
		store[spec.Name+".bias"] = b
	}
	require.NoError(t, dehaze.SaveWeights(path, store))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "w.safetensors")
	writeZeroWeights(t, weights)

	img := filepath.Join(dir, "haze.png")
	require.NoError(t, dehaze.WriteImage(img, make([]uint8, 3*3*3), 3, 3))
	outDir := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	logger := log.New(&stderr, "dehaze: ", 0)

	err := run(context.Background(), []string{"-weights", weights, "-out", outDir, "-v", img}, &stdout, logger)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "DehazeNet(")
	assert.Contains(t, stdout.String(), "dehazed 1 images")

	_, err = os.Stat(filepath.Join(outDir, "haze_dehazed.png"))
	require.NoError(t, err)
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "w.safetensors")
	writeZeroWeights(t, weights)

	good := filepath.Join(dir, "good.png")
	require.NoError(t, dehaze.WriteImage(good, make([]uint8, 3), 1, 1))
	missing := filepath.Join(dir, "missing.png")

	var stdout, stderr bytes.Buffer
	logger := log.New(&stderr, "dehaze: ", 0)

	err := run(context.Background(),
		[]string{"-weights", weights, "-out", dir, "-workers", "2", "-suffix", "_x", missing, good},
		&stdout, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 images failed")
	assert.Contains(t, stderr.String(), "missing.png")

	_, err = os.Stat(filepath.Join(dir, "good_x.png"))
	require.NoError(t, err)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := log.New(&stderr, "dehaze: ", 0)

	require.ErrorIs(t, run(context.Background(), nil, &stdout, logger), errUsage)
	require.ErrorIs(t, run(context.Background(), []string{"-bogus"}, &stdout, logger), errUsage)

	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout, logger))
	assert.Contains(t, stdout.String(), version)
}

func TestRun_BadWeights(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := log.New(&stderr, "dehaze: ", 0)

	err := run(context.Background(),
		[]string{"-weights", filepath.Join(t.TempDir(), "none.safetensors"), "x.png"},
		&stdout, logger)
	require.Error(t, err)
}
