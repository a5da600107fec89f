// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col convolution on top of gonum BLAS
//   - Goroutine-parallel im2col and output reordering
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dehaze/backend/cpu"
//	    "github.com/born-ml/dehaze/dehaze"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    d, err := dehaze.Open("dehazer.safetensors", backend, dehaze.DefaultOptions())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = d.DehazeFile("haze.png", "clear.png")
//	}
//
// # Parallelism
//
// New uses every core. NewSequential keeps all work on the calling goroutine,
// which is useful when images are already processed in parallel.
package cpu
