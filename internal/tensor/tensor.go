package tensor

import "fmt"

// Tensor is an n-dimensional array of a single floating-point element type.
//
// The data is stored as a flat slice in row-major order. Tensors do not
// track gradients themselves; see the nn package for trainable parameters.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4})
//	t.Set(2.5, 1, 2)
//	v := t.At(1, 2)
type Tensor[T Float] struct {
	data  []T
	shape Shape
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's own storage.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrInvalidShape, shape, shape.NumElements(), len(data))
	}

	t := &Tensor[T]{
		data:  make([]T, len(data)),
		shape: shape.Clone(),
	}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
//
// The returned slice is the tensor's own; callers must not modify it.
func (t *Tensor[T]) Shape() Shape {
	return t.shape
}

// Data returns the tensor's backing slice in row-major order.
//
// Mutating the slice mutates the tensor. This is the intended access path
// for elementwise update loops.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	clone := &Tensor[T]{
		data:  make([]T, len(t.data)),
		shape: t.shape.Clone(),
	}
	copy(clone.data, t.data)
	return clone
}

// At returns the element at the given multi-dimensional index.
// Panics if the number of indices does not match the tensor's rank.
func (t *Tensor[T]) At(indices ...int) T {
	return t.data[t.offset(indices)]
}

// Set stores a value at the given multi-dimensional index.
// Panics if the number of indices does not match the tensor's rank.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.data[t.offset(indices)] = value
}

// offset converts a multi-dimensional index into a flat row-major offset.
func (t *Tensor[T]) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices for shape %v, got %d",
			len(t.shape), t.shape, len(indices)))
	}
	strides := t.shape.ComputeStrides()
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of shape %v",
				idx, i, t.shape))
		}
		off += idx * strides[i]
	}
	return off
}
