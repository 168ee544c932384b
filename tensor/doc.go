// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the numeric substrate for the descent optimizers.
//
// # Overview
//
// This package contains:
//   - Shape: tensor dimensions with validation and stride computation
//   - Tensor[T]: an n-dimensional array over a single float type
//   - Creation helpers: FromSlice, Zeros, ZerosLike, Full, Randn
//
// Tensors are plain in-memory values: no device placement, no gradient
// tracking, no dtype erasure. A Tensor's element type is fixed by its type
// parameter, so mixing float32 and float64 tensors in one expression does
// not compile.
//
// # Basic Usage
//
//	import "github.com/descent-ml/descent/tensor"
//
//	func main() {
//	    w, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    grad := tensor.ZerosLike(w)
//	    fmt.Println(w.Shape(), grad.NumElements())
//	}
package tensor
