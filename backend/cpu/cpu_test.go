// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dehaze/backend/cpu"
	"github.com/born-ml/dehaze/tensor"
)

func TestBackendsAgree(t *testing.T) {
	data := make([]float32, 2*3*6*6)
	for i := range data {
		data[i] = float32(i%7) / 7
	}
	kernel := make([]float32, 3*3*3*3)
	for i := range kernel {
		kernel[i] = float32(i%5) - 2
	}

	var outputs [][]float32
	for _, backend := range []*cpu.Backend{cpu.New(), cpu.NewWithWorkers(2), cpu.NewSequential()} {
		assert.Equal(t, "CPU", backend.Name())
		assert.Equal(t, tensor.CPU, backend.Device())

		x, err := tensor.FromSlice(data, tensor.Shape{2, 3, 6, 6}, backend)
		require.NoError(t, err)
		k, err := tensor.FromSlice(kernel, tensor.Shape{3, 3, 3, 3}, backend)
		require.NoError(t, err)

		y, err := x.Conv2D(k, 1, 1)
		require.NoError(t, err)
		outputs = append(outputs, y.Data())
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}
