// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the tensor substrate the dehazing network runs on.
//
// # Overview
//
// The package provides:
//   - Generic type-safe tensors (Tensor[T, B]) over float32 and uint8
//   - NumPy-style broadcasting for element-wise arithmetic
//   - Channel concatenation, permutation and reshape
//   - 2D convolution
//
// Every operation returns a new tensor and an error; inputs are never
// modified.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dehaze/backend/cpu"
//	    "github.com/born-ml/dehaze/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.Full[float32](tensor.Shape{1, 3, 4, 4}, 0.5, backend)
//	    y, err := x.MulScalar(2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(y) // Tensor[float32][1 3 4 4] on CPU
//	}
//
// # Errors
//
// Shape violations return an error wrapping ErrShapeMismatch:
//
//	if errors.Is(err, tensor.ErrShapeMismatch) {
//	    // wrong rank, channel count or buffer length
//	}
package tensor
