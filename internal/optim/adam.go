package optim

import (
	"fmt"
	"math"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSProp and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// The bias correction is the main contrast with Adadelta, whose
// zero-initialized accumulators are used as-is.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[T tensor.Float] struct {
	params []*nn.Parameter[T]
	lr     T
	beta1  T
	beta2  T
	eps    T
	t      int // Timestep for bias correction
	m      map[*nn.Parameter[T]]*tensor.Tensor[T]
	v      map[*nn.Parameter[T]]*tensor.Tensor[T]
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Decay rates of the moment averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer for the given parameters.
//
// Returns ErrInvalidConfig if LR or Eps is negative or either beta is
// outside [0, 1). Zero values take the defaults LR = 0.001,
// Betas = [0.9, 0.999], Eps = 1e-8.
func NewAdam[T tensor.Float](params []*nn.Parameter[T], config AdamConfig) (*Adam[T], error) {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	if config.LR < 0 {
		return nil, fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidConfig, config.LR)
	}
	for _, beta := range config.Betas {
		if beta < 0 || beta >= 1 {
			return nil, fmt.Errorf("%w: beta %v outside [0, 1)", ErrInvalidConfig, beta)
		}
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("%w: eps %v must be positive", ErrInvalidConfig, config.Eps)
	}

	return &Adam[T]{
		params: params,
		lr:     T(config.LR),
		beta1:  T(config.Betas[0]),
		beta2:  T(config.Betas[1]),
		eps:    T(config.Eps),
		t:      0,
		m:      make(map[*nn.Parameter[T]]*tensor.Tensor[T]),
		v:      make(map[*nn.Parameter[T]]*tensor.Tensor[T]),
	}, nil
}

// Step performs a single Adam optimization step.
//
// Parameters with no gradient attached are skipped. The timestep, and
// with it the bias correction, advances once per Step call.
func (a *Adam[T]) Step() error {
	a.t++

	biasCorrection1 := T(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := T(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for _, param := range a.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}
		if err := checkGradShape(param, grad); err != nil {
			return err
		}

		m, exists := a.m[param]
		if !exists {
			m = tensor.ZerosLike(param.Tensor())
			a.m[param] = m
		}
		v, exists := a.v[param]
		if !exists {
			v = tensor.ZerosLike(param.Tensor())
			a.v[param] = v
		}

		paramData := param.Tensor().Data()
		gradData := grad.Data()
		mData := m.Data()
		vData := v.Data()

		for i := range paramData {
			g := gradData[i]

			// m_t = beta1 * m_{t-1} + (1-beta1) * g
			mData[i] = a.beta1*mData[i] + (1-a.beta1)*g

			// v_t = beta2 * v_{t-1} + (1-beta2) * g²
			vData[i] = a.beta2*vData[i] + (1-a.beta2)*g*g

			mHat := mData[i] / biasCorrection1
			vHat := vData[i] / biasCorrection2

			paramData[i] -= a.lr * mHat / (T(math.Sqrt(float64(vHat))) + a.eps)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam[T]) ZeroGrad() {
	zeroGrads(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam[T]) GetLR() float64 {
	return float64(a.lr)
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (a *Adam[T]) SetLR(lr float64) {
	a.lr = T(lr)
}

// GetTimestep returns the current timestep.
//
// Useful for monitoring optimizer state.
func (a *Adam[T]) GetTimestep() int {
	return a.t
}
