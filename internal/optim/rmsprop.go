package optim

import (
	"fmt"
	"math"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// RMSProp implements the RMSProp optimizer.
//
// RMSProp is Adagrad with a leaky accumulator: the running sum of squared
// gradients becomes an exponential moving average, so the effective step
// size adapts to the recent gradient scale instead of decaying forever:
//
//	sq_t  = alpha * sq_{t-1} + (1-alpha) * g_t²
//	param = param - lr * g_t / (sqrt(sq_t) + eps)
//
// Adadelta goes one step further and removes lr by rescaling with an EWMA
// of the applied updates.
//
// Reference: Tieleman & Hinton, "Lecture 6.5 - RMSProp" (COURSERA:
// Neural Networks for Machine Learning, 2012)
type RMSProp[T tensor.Float] struct {
	params    []*nn.Parameter[T]
	lr        T
	alpha     T
	eps       T
	squareAvg map[*nn.Parameter[T]]*tensor.Tensor[T]
}

// RMSPropConfig holds configuration for the RMSProp optimizer.
type RMSPropConfig struct {
	LR    float64 // Learning rate (default: 0.01)
	Alpha float64 // Decay rate of the squared-gradient average (default: 0.99)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// NewRMSProp creates a new RMSProp optimizer for the given parameters.
//
// Returns ErrInvalidConfig if LR or Eps is negative, or Alpha is outside
// [0, 1). Zero values take the defaults LR = 0.01, Alpha = 0.99, Eps = 1e-8.
func NewRMSProp[T tensor.Float](params []*nn.Parameter[T], config RMSPropConfig) (*RMSProp[T], error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Alpha == 0 {
		config.Alpha = 0.99
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	if config.LR < 0 {
		return nil, fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidConfig, config.LR)
	}
	if config.Alpha < 0 || config.Alpha >= 1 {
		return nil, fmt.Errorf("%w: alpha %v outside [0, 1)", ErrInvalidConfig, config.Alpha)
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("%w: eps %v must be positive", ErrInvalidConfig, config.Eps)
	}

	return &RMSProp[T]{
		params:    params,
		lr:        T(config.LR),
		alpha:     T(config.Alpha),
		eps:       T(config.Eps),
		squareAvg: make(map[*nn.Parameter[T]]*tensor.Tensor[T]),
	}, nil
}

// Step performs a single optimization step.
//
// Parameters with no gradient attached are skipped.
func (o *RMSProp[T]) Step() error {
	for _, param := range o.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}
		if err := checkGradShape(param, grad); err != nil {
			return err
		}

		sq, exists := o.squareAvg[param]
		if !exists {
			sq = tensor.ZerosLike(param.Tensor())
			o.squareAvg[param] = sq
		}

		paramData := param.Tensor().Data()
		gradData := grad.Data()
		sqData := sq.Data()

		for i := range paramData {
			g := gradData[i]
			sqData[i] = o.alpha*sqData[i] + (1-o.alpha)*g*g
			paramData[i] -= o.lr * g / (T(math.Sqrt(float64(sqData[i]))) + o.eps)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (o *RMSProp[T]) ZeroGrad() {
	zeroGrads(o.params)
}

// GetLR returns the current learning rate.
func (o *RMSProp[T]) GetLR() float64 {
	return float64(o.lr)
}

// SetLR updates the learning rate.
func (o *RMSProp[T]) SetLR(lr float64) {
	o.lr = T(lr)
}
