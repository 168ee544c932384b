// Package tensor provides the core tensor types for the descent optimizers.
package tensor

// Float is the constraint for supported tensor element types.
//
// The whole module is built around a single floating-point element type
// per tensor: mixed-dtype arithmetic is unrepresentable at compile time,
// so no runtime coercion between element types ever happens.
type Float interface {
	~float32 | ~float64
}
