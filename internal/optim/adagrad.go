package optim

import (
	"fmt"
	"math"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// Adagrad implements the Adagrad optimizer.
//
// Adagrad keeps a running sum of squared gradients per element and divides
// each step by its square root, so frequently-updated elements take smaller
// and smaller steps while rare ones keep moving:
//
//	sum_t = sum_{t-1} + g_t²
//	param = param - lr * g_t / (sqrt(sum_t) + eps)
//
// Because the accumulator only ever grows, the effective step size decays
// monotonically toward zero; RMSProp and Adadelta replace the sum with a
// leaky average to fix exactly that.
//
// Reference: "Adaptive Subgradient Methods for Online Learning and
// Stochastic Optimization" (Duchi, Hazan & Singer, 2011)
type Adagrad[T tensor.Float] struct {
	params     []*nn.Parameter[T]
	lr         T
	eps        T
	sumSquares map[*nn.Parameter[T]]*tensor.Tensor[T]
}

// AdagradConfig holds configuration for the Adagrad optimizer.
type AdagradConfig struct {
	LR  float64 // Learning rate (default: 0.01)
	Eps float64 // Term for numerical stability (default: 1e-10)
}

// NewAdagrad creates a new Adagrad optimizer for the given parameters.
//
// Returns ErrInvalidConfig if LR or Eps is negative. Zero values take the
// defaults LR = 0.01 and Eps = 1e-10.
func NewAdagrad[T tensor.Float](params []*nn.Parameter[T], config AdagradConfig) (*Adagrad[T], error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Eps == 0 {
		config.Eps = 1e-10
	}
	if config.LR < 0 {
		return nil, fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidConfig, config.LR)
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("%w: eps %v must be positive", ErrInvalidConfig, config.Eps)
	}

	return &Adagrad[T]{
		params:     params,
		lr:         T(config.LR),
		eps:        T(config.Eps),
		sumSquares: make(map[*nn.Parameter[T]]*tensor.Tensor[T]),
	}, nil
}

// Step performs a single optimization step.
//
// Parameters with no gradient attached are skipped.
func (o *Adagrad[T]) Step() error {
	for _, param := range o.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}
		if err := checkGradShape(param, grad); err != nil {
			return err
		}

		sum, exists := o.sumSquares[param]
		if !exists {
			sum = tensor.ZerosLike(param.Tensor())
			o.sumSquares[param] = sum
		}

		paramData := param.Tensor().Data()
		gradData := grad.Data()
		sumData := sum.Data()

		for i := range paramData {
			g := gradData[i]
			sumData[i] += g * g
			paramData[i] -= o.lr * g / (T(math.Sqrt(float64(sumData[i]))) + o.eps)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (o *Adagrad[T]) ZeroGrad() {
	zeroGrads(o.params)
}

// GetLR returns the current learning rate.
func (o *Adagrad[T]) GetLR() float64 {
	return float64(o.lr)
}

// SetLR updates the learning rate.
func (o *Adagrad[T]) SetLR(lr float64) {
	o.lr = T(lr)
}
