// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// ErrInvalidConfig is returned by constructors for out-of-range
// hyperparameters.
var ErrInvalidConfig = optim.ErrInvalidConfig

// Adadelta

// Adadelta represents the Adadelta optimizer. It has no learning rate:
// per-element step sizes come from the ratio of its two accumulators.
type Adadelta[T tensor.Float] = optim.Adadelta[T]

// AdadeltaConfig contains configuration for the Adadelta optimizer.
type AdadeltaConfig = optim.AdadeltaConfig

// DefaultAdadeltaConfig returns the conventional Adadelta hyperparameters
// (Rho = 0.9, Eps = 1e-5).
func DefaultAdadeltaConfig() AdadeltaConfig {
	return optim.DefaultAdadeltaConfig()
}

// NewAdadelta creates a new Adadelta optimizer.
//
// Example:
//
//	optimizer, err := optim.NewAdadelta(
//	    model.Parameters(),
//	    optim.AdadeltaConfig{Rho: 0.9, Eps: 1e-5},
//	)
func NewAdadelta[T tensor.Float](params []*nn.Parameter[T], config AdadeltaConfig) (*Adadelta[T], error) {
	return optim.NewAdadelta(params, config)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[T tensor.Float] = optim.SGD[T]

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer, err := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	)
func NewSGD[T tensor.Float](params []*nn.Parameter[T], config SGDConfig) (*SGD[T], error) {
	return optim.NewSGD(params, config)
}

// Adagrad

// Adagrad represents the Adagrad optimizer.
type Adagrad[T tensor.Float] = optim.Adagrad[T]

// AdagradConfig contains configuration for the Adagrad optimizer.
type AdagradConfig = optim.AdagradConfig

// NewAdagrad creates a new Adagrad optimizer.
func NewAdagrad[T tensor.Float](params []*nn.Parameter[T], config AdagradConfig) (*Adagrad[T], error) {
	return optim.NewAdagrad(params, config)
}

// RMSProp

// RMSProp represents the RMSProp optimizer.
type RMSProp[T tensor.Float] = optim.RMSProp[T]

// RMSPropConfig contains configuration for the RMSProp optimizer.
type RMSPropConfig = optim.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp[T tensor.Float](params []*nn.Parameter[T], config RMSPropConfig) (*RMSProp[T], error) {
	return optim.NewRMSProp(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[T tensor.Float] = optim.Adam[T]

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer, err := optim.NewAdam(
//	    model.Parameters(),
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float64{0.9, 0.999},
//	        Eps:   1e-8,
//	    },
//	)
func NewAdam[T tensor.Float](params []*nn.Parameter[T], config AdamConfig) (*Adam[T], error) {
	return optim.NewAdam(params, config)
}
