// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimization algorithms for
// gradient-based training.
//
// # Overview
//
// This package contains:
//   - SGD: stochastic gradient descent with momentum
//   - Adagrad: per-element step sizes from accumulated squared gradients
//   - RMSProp: Adagrad with a leaky squared-gradient accumulator
//   - Adadelta: RMSProp without a learning rate (the step size is derived
//     entirely from the optimizer's own accumulators)
//   - Adam: adaptive moment estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/descent-ml/descent/nn"
//	    "github.com/descent-ml/descent/optim"
//	    "github.com/descent-ml/descent/tensor"
//	)
//
//	func main() {
//	    w, _ := tensor.FromSlice([]float32{0.0, 0.0}, tensor.Shape{2})
//	    weight := nn.NewParameter("weight", w)
//
//	    optimizer, err := optim.NewAdadelta(
//	        []*nn.Parameter[float32]{weight},
//	        optim.AdadeltaConfig{Rho: 0.9, Eps: 1e-5},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Training loop
//	    for epoch := range 10 {
//	        for batch := range batches {
//	            // 1. Compute gradients for the mini-batch and attach them
//	            weight.SetGrad(computeGradient(weight, batch))
//
//	            // 2. Update parameters
//	            if err := optimizer.Step(); err != nil {
//	                log.Fatal(err)
//	            }
//
//	            // 3. Clear gradients
//	            optimizer.ZeroGrad()
//	        }
//	    }
//	}
//
// # Choosing an optimizer
//
// The adaptive family forms a progression. Adagrad divides each step by
// the root of a running sum of squared gradients, which decays forever.
// RMSProp replaces the sum with an exponential moving average. Adadelta
// additionally rescales by a moving average of the applied updates, which
// cancels the learning rate: AdadeltaConfig has only Rho and Eps. Adam
// combines the RMSProp denominator with momentum and bias correction.
//
// # Concurrency
//
// Optimizer state for a parameter advances strictly sequentially; a single
// optimizer must not be stepped from multiple goroutines. Distinct
// parameters share no state, so partitioning parameters across separate
// optimizers driven by separate goroutines is safe.
package optim
