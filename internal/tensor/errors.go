package tensor

import "errors"

var (
	// ErrInvalidShape is returned when a shape has a non-positive dimension
	// or does not match the length of the data it is paired with.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch is returned when an operation receives tensors whose
	// shapes are required to be identical but are not.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
)
