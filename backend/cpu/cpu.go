// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/dehaze/internal/backend/cpu"
	"github.com/born-ml/dehaze/internal/parallel"
	"github.com/born-ml/dehaze/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend using all available cores.
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.Zeros[float32](tensor.Shape{1, 3, 8, 8}, backend)
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend that splits each kernel over at most n
// goroutines.
func NewWithWorkers(n int) *Backend {
	cfg := parallel.DefaultConfig()
	cfg.NumWorkers = max(n, 1)
	cfg.Enabled = cfg.NumWorkers > 1
	return internalcpu.NewWithConfig(cfg)
}

// NewSequential creates a CPU backend that never spawns goroutines.
func NewSequential() *Backend {
	return internalcpu.NewWithConfig(parallel.Sequential())
}
