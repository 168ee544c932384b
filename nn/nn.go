// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// Parameter represents a trainable parameter of a model.
type Parameter[T tensor.Float] = nn.Parameter[T]

// NewParameter creates a new trainable parameter.
//
// Example:
//
//	w, _ := tensor.FromSlice([]float32{0.1, -0.2}, tensor.Shape{2})
//	weight := nn.NewParameter("weight", w)
func NewParameter[T tensor.Float](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return nn.NewParameter(name, t)
}
