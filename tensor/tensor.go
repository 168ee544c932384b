// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Float is the constraint for supported tensor element types.
type Float = tensor.Float

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is an n-dimensional array of a single floating-point element type.
type Tensor[T Float] = tensor.Tensor[T]

// Sentinel errors for invalid-argument conditions.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
)

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's own storage.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T Float](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike[T Float](t *Tensor[T]) *Tensor[T] {
	return tensor.ZerosLike(t)
}

// Full creates a tensor filled with a specific value.
func Full[T Float](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// Randn creates a tensor with values drawn from a standard normal
// distribution using the given source.
func Randn[T Float](shape Shape, rng *rand.Rand) *Tensor[T] {
	return tensor.Randn[T](shape, rng)
}
