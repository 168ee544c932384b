// Package optim implements first-order optimization algorithms for
// gradient-based training.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with momentum
//   - Adagrad: per-element step sizes from accumulated squared gradients
//   - RMSProp: Adagrad with a leaky (EWMA) squared-gradient accumulator
//   - Adadelta: RMSProp without a learning rate, rescaled by past updates
//   - Adam: adaptive moment estimation with bias correction
//
// Design inspired by PyTorch's torch.optim but adapted for Go with type safety.
//
// Gradients are computed by the caller (analytically, numerically, or by an
// external differentiation mechanism) and attached to each parameter with
// SetGrad once per mini-batch. The optimizer then updates every parameter
// that carries a gradient:
//
//	optimizer, err := optim.NewAdadelta(model.Parameters(), optim.AdadeltaConfig{
//	    Rho: 0.9,
//	    Eps: 1e-5,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Training loop
//	for epoch := range epochs {
//	    for batch := range batches {
//	        computeGradients(model, batch) // SetGrad on each parameter
//	        if err := optimizer.Step(); err != nil {
//	            log.Fatal(err)
//	        }
//	        optimizer.ZeroGrad()
//	    }
//	}
//
// Optimizer state for a given parameter is advanced strictly sequentially:
// calling Step concurrently on the same optimizer is not safe. Distinct
// parameters share no state, so a caller that partitions parameters across
// separate optimizers may drive those optimizers from separate goroutines.
package optim

import (
	"errors"
	"fmt"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// ErrInvalidConfig is returned by optimizer constructors when a
// hyperparameter is outside its valid range.
var ErrInvalidConfig = errors.New("optim: invalid configuration")

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters based on computed gradients to
// minimize the loss function during training.
//
// Note that the interface carries no learning-rate accessor: not every
// algorithm has one (Adadelta derives its per-element step size entirely
// from its accumulators). Optimizers with a learning rate expose
// GetLR/SetLR as concrete methods.
type Optimizer interface {
	// Step applies one gradient update to every parameter that has a
	// gradient attached. Parameters with a nil gradient are skipped.
	//
	// Returns an error if a gradient's shape does not match its
	// parameter's shape; in that case the offending parameter and its
	// optimizer state are left untouched.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called after each step so the next step cannot
	// silently reuse stale gradients.
	ZeroGrad()
}

// checkGradShape validates that a gradient matches its parameter's shape.
//
// Called before any state or parameter mutation, so a failed step leaves
// the parameter's tensors fully intact.
func checkGradShape[T tensor.Float](param *nn.Parameter[T], grad *tensor.Tensor[T]) error {
	if !grad.Shape().Equal(param.Tensor().Shape()) {
		return fmt.Errorf("optim: parameter %q: gradient shape %v does not match parameter shape %v: %w",
			param.Name(), grad.Shape(), param.Tensor().Shape(), tensor.ErrShapeMismatch)
	}
	return nil
}

// zeroGrads clears the gradients of all given parameters.
func zeroGrads[T tensor.Float](params []*nn.Parameter[T]) {
	for _, param := range params {
		if param != nil {
			param.ZeroGrad()
		}
	}
}
