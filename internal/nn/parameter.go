// Package nn provides the trainable parameter type consumed by optimizers.
package nn

import (
	"github.com/descent-ml/descent/internal/tensor"
)

// Parameter represents a trainable parameter of a model.
//
// Parameters are tensors that are updated by an optimizer during training.
// They typically represent weights and biases of layers. The training loop
// owns the parameter values; it computes a gradient for each parameter once
// per mini-batch and attaches it with SetGrad before calling the optimizer.
//
// Example:
//
//	// Create a weight parameter
//	weight := nn.NewParameter("weight", weightTensor)
//
//	// Attach the gradient computed for this step
//	weight.SetGrad(grad)
//
//	// Read the current value
//	w := weight.Tensor()
type Parameter[T tensor.Float] struct {
	name   string            // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[T] // The parameter tensor
	grad   *tensor.Tensor[T] // Gradient for the current step, nil when unset
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
// The gradient starts out nil and is attached per step by the training loop.
func NewParameter[T tensor.Float](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return &Parameter[T]{
		name:   name,
		tensor: t,
		grad:   nil,
	}
}

// Name returns the parameter name.
func (p *Parameter[T]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T]) Tensor() *tensor.Tensor[T] {
	return p.tensor
}

// Grad returns the gradient tensor.
//
// Returns nil if no gradient has been attached for the current step.
// Optimizers skip parameters with a nil gradient.
func (p *Parameter[T]) Grad() *tensor.Tensor[T] {
	return p.grad
}

// SetGrad attaches the gradient tensor for the current step.
func (p *Parameter[T]) SetGrad(grad *tensor.Tensor[T]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
//
// This should be called after each optimizer step to avoid the next step
// reusing a stale gradient.
func (p *Parameter[T]) ZeroGrad() {
	p.grad = nil
}
