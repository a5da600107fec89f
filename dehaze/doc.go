// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dehaze removes haze from single RGB images with DehazeNet, a
// five-layer densely concatenated convolutional network.
//
// # Overview
//
// Processing runs in three stages:
//   - Preprocess: (H, W, 3) uint8 pixels -> (1, 3, H, W) float32 in [0, 1]
//   - DehazeNet: five 3-channel convolutions, then relu(k*x - k + 1)
//   - Postprocess: clamp to [0, 1], scale by 255, truncate to uint8
//
// Weights are supplied explicitly as a parameter store, usually read from a
// SafeTensors file holding e_conv1.weight ... e_conv5.bias.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dehaze/backend/cpu"
//	    "github.com/born-ml/dehaze/dehaze"
//	)
//
//	func main() {
//	    d, err := dehaze.Open("dehazer.safetensors", cpu.New(), dehaze.DefaultOptions())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := d.DehazeFile("haze.png", "result/haze_dehazed.png"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Errors
//
//	var cerr *dehaze.ConstructionError
//	switch {
//	case errors.Is(err, dehaze.ErrMissingParameter):
//	    // weights file lacks a tensor
//	case errors.Is(err, dehaze.ErrShapeMismatch):
//	    // a tensor or image has the wrong shape
//	}
//	if errors.As(err, &cerr) {
//	    fmt.Println("failed layer:", cerr.Layer)
//	}
package dehaze
