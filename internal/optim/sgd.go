package optim

import (
	"fmt"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD[T tensor.Float] struct {
	params     []*nn.Parameter[T]
	lr         T
	momentum   T
	velocities map[*nn.Parameter[T]]*tensor.Tensor[T]
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer for the given parameters.
//
// Returns ErrInvalidConfig if LR is negative or Momentum is outside [0, 1).
// LR = 0 takes the default 0.01.
func NewSGD[T tensor.Float](params []*nn.Parameter[T], config SGDConfig) (*SGD[T], error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 {
		return nil, fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidConfig, config.LR)
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		return nil, fmt.Errorf("%w: momentum %v outside [0, 1)", ErrInvalidConfig, config.Momentum)
	}

	return &SGD[T]{
		params:     params,
		lr:         T(config.LR),
		momentum:   T(config.Momentum),
		velocities: make(map[*nn.Parameter[T]]*tensor.Tensor[T]),
	}, nil
}

// Step performs a single optimization step.
//
// Parameters with no gradient attached are skipped.
func (s *SGD[T]) Step() error {
	for _, param := range s.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}
		if err := checkGradShape(param, grad); err != nil {
			return err
		}

		paramData := param.Tensor().Data()
		gradData := grad.Data()

		if s.momentum == 0 {
			// Simple SGD: param -= lr * grad
			for i := range paramData {
				paramData[i] -= s.lr * gradData[i]
			}
			continue
		}

		velocity, exists := s.velocities[param]
		if !exists {
			velocity = tensor.ZerosLike(param.Tensor())
			s.velocities[param] = velocity
		}
		velocityData := velocity.Data()

		// velocity = momentum * velocity + grad
		// param -= lr * velocity
		for i := range paramData {
			velocityData[i] = s.momentum*velocityData[i] + gradData[i]
			paramData[i] -= s.lr * velocityData[i]
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[T]) ZeroGrad() {
	zeroGrads(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD[T]) GetLR() float64 {
	return float64(s.lr)
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD[T]) SetLR(lr float64) {
	s.lr = T(lr)
}

// StateDict returns the optimizer state for inspection or checkpointing.
//
// For SGD with momentum, this exports a copy of the velocity buffer for
// each parameter under the key "velocity.{param_index}". Without momentum
// the returned map is empty.
func (s *SGD[T]) StateDict() map[string]*tensor.Tensor[T] {
	stateDict := make(map[string]*tensor.Tensor[T])

	if s.momentum == 0 {
		return stateDict
	}

	for i, param := range s.params {
		velocity, exists := s.velocities[param]
		if !exists {
			continue // No velocity yet (hasn't been used in training)
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity.Clone()
	}

	return stateDict
}

// LoadStateDict restores velocity buffers exported by StateDict.
//
// If momentum is 0 the provided state is ignored. Returns an error if a
// velocity's shape does not match its parameter's shape.
func (s *SGD[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	if s.momentum == 0 {
		return nil
	}

	s.velocities = make(map[*nn.Parameter[T]]*tensor.Tensor[T])

	for i, param := range s.params {
		velocity, exists := stateDict[fmt.Sprintf("velocity.%d", i)]
		if !exists {
			// No velocity for this parameter - will be initialized on first step
			continue
		}

		if !velocity.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("optim: velocity shape mismatch for parameter %d (%q): expected %v, got %v: %w",
				i, param.Name(), param.Tensor().Shape(), velocity.Shape(), tensor.ErrShapeMismatch)
		}

		s.velocities[param] = velocity.Clone()
	}

	return nil
}
