package optim

import (
	"fmt"
	"math"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// Adadelta implements the Adadelta optimizer.
//
// Adadelta is RMSProp taken one step further: instead of scaling gradients
// by a global learning rate, it rescales them by an exponential moving
// average of the updates it has actually applied, so the numerator and
// denominator of the step size carry the same units and no learning-rate
// hyperparameter exists at all.
//
// Update rule (elementwise, in this order):
//
//	s_t     = rho * s_{t-1} + (1-rho) * g_t²            // squared-gradient EWMA
//	step_t  = sqrt((delta_{t-1} + eps) / (s_t + eps)) * g_t
//	x_t     = x_{t-1} - step_t
//	delta_t = rho * delta_{t-1} + (1-rho) * step_t²     // squared-update EWMA
//
// delta is blended from the applied step, not the raw gradient; reordering
// the four lines breaks the recurrence. Both accumulators start at zero and
// no bias correction is applied, so early steps are damped toward zero.
//
// Reference: "ADADELTA: An Adaptive Learning Rate Method" (Zeiler, 2012)
//
// Example:
//
//	optimizer, err := optim.NewAdadelta(model.Parameters(), optim.AdadeltaConfig{
//	    Rho: 0.9,
//	    Eps: 1e-5,
//	})
type Adadelta[T tensor.Float] struct {
	params []*nn.Parameter[T]
	rho    T
	eps    T
	state  map[*nn.Parameter[T]]*accumulatorPair[T]
}

// accumulatorPair is the per-parameter Adadelta state: two tensors shaped
// like the parameter, exclusively owned by the optimizer.
type accumulatorPair[T tensor.Float] struct {
	squareAvg *tensor.Tensor[T] // EWMA of squared gradients (s)
	accDelta  *tensor.Tensor[T] // EWMA of squared applied updates (delta)
}

// AdadeltaConfig holds configuration for the Adadelta optimizer.
//
// There is no learning rate: Rho and Eps are the only tunables.
type AdadeltaConfig struct {
	// Rho is the decay rate of both moving averages, in [0, 1).
	// Rho = 0 is valid and means the accumulators keep no history
	// beyond the previous step. Note that the zero value is therefore
	// meaningful and is NOT replaced with a default; use
	// DefaultAdadeltaConfig for the conventional 0.9.
	Rho float64

	// Eps is a small positive constant added to both accumulators
	// before the ratio is taken, guarding against division by zero
	// and zero-gradient stagnation (default: 1e-5).
	Eps float64
}

// DefaultAdadeltaConfig returns the conventional Adadelta hyperparameters.
func DefaultAdadeltaConfig() AdadeltaConfig {
	return AdadeltaConfig{Rho: 0.9, Eps: 1e-5}
}

// NewAdadelta creates a new Adadelta optimizer for the given parameters.
//
// Returns ErrInvalidConfig if Rho is outside [0, 1) or Eps is negative.
// Eps = 0 takes the default 1e-5. Accumulators are allocated lazily, as
// zero tensors shaped like their parameter, on the first Step that sees
// a gradient for that parameter.
func NewAdadelta[T tensor.Float](params []*nn.Parameter[T], config AdadeltaConfig) (*Adadelta[T], error) {
	if config.Rho < 0 || config.Rho >= 1 {
		return nil, fmt.Errorf("%w: rho %v outside [0, 1)", ErrInvalidConfig, config.Rho)
	}
	if config.Eps == 0 {
		config.Eps = 1e-5
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("%w: eps %v must be positive", ErrInvalidConfig, config.Eps)
	}

	return &Adadelta[T]{
		params: params,
		rho:    T(config.Rho),
		eps:    T(config.Eps),
		state:  make(map[*nn.Parameter[T]]*accumulatorPair[T]),
	}, nil
}

// Step performs a single Adadelta optimization step.
//
// Each parameter with a gradient attached is updated in place along with
// its accumulator pair; parameters with a nil gradient are skipped. A
// gradient whose shape does not match its parameter aborts the step with
// an error before that parameter or its accumulators are touched.
func (a *Adadelta[T]) Step() error {
	for _, param := range a.params {
		grad := param.Grad()
		if grad == nil {
			// Parameter did not participate in this step, skip
			continue
		}
		if err := checkGradShape(param, grad); err != nil {
			return err
		}

		st, exists := a.state[param]
		if !exists {
			st = &accumulatorPair[T]{
				squareAvg: tensor.ZerosLike(param.Tensor()),
				accDelta:  tensor.ZerosLike(param.Tensor()),
			}
			a.state[param] = st
		}

		a.updateParameter(param, grad, st)
	}
	return nil
}

// updateParameter applies the Adadelta recurrence to a single parameter.
func (a *Adadelta[T]) updateParameter(param *nn.Parameter[T], grad *tensor.Tensor[T], st *accumulatorPair[T]) {
	paramData := param.Tensor().Data()
	gradData := grad.Data()
	s := st.squareAvg.Data()
	d := st.accDelta.Data()

	for i := range paramData {
		g := gradData[i]

		// s = rho * s + (1-rho) * g²
		s[i] = a.rho*s[i] + (1-a.rho)*g*g

		// step = sqrt((delta + eps) / (s + eps)) * g
		step := T(math.Sqrt(float64((d[i]+a.eps)/(s[i]+a.eps)))) * g

		// x -= step
		paramData[i] -= step

		// delta = rho * delta + (1-rho) * step²
		d[i] = a.rho*d[i] + (1-a.rho)*step*step
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adadelta[T]) ZeroGrad() {
	zeroGrads(a.params)
}

// Rho returns the decay rate of the moving averages.
func (a *Adadelta[T]) Rho() float64 {
	return float64(a.rho)
}

// Eps returns the numerical-stability constant.
func (a *Adadelta[T]) Eps() float64 {
	return float64(a.eps)
}

// StateDict returns the optimizer state for inspection or checkpointing.
//
// State keys: "square_avg.{param_index}" and "acc_delta.{param_index}".
// The returned tensors are copies; mutating them does not affect the
// optimizer. Parameters whose accumulators have not been allocated yet
// are absent from the map.
func (a *Adadelta[T]) StateDict() map[string]*tensor.Tensor[T] {
	stateDict := make(map[string]*tensor.Tensor[T])

	for i, param := range a.params {
		st, exists := a.state[param]
		if !exists {
			continue // No accumulators yet (hasn't been used in training)
		}

		stateDict[fmt.Sprintf("square_avg.%d", i)] = st.squareAvg.Clone()
		stateDict[fmt.Sprintf("acc_delta.%d", i)] = st.accDelta.Clone()
	}

	return stateDict
}

// LoadStateDict restores accumulator pairs exported by StateDict.
//
// A parameter whose keys are absent keeps lazily-initialized zero
// accumulators. Returns an error if a restored tensor's shape does not
// match its parameter's shape, or if only one half of a pair is present.
func (a *Adadelta[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	a.state = make(map[*nn.Parameter[T]]*accumulatorPair[T])

	for i, param := range a.params {
		squareAvg, haveS := stateDict[fmt.Sprintf("square_avg.%d", i)]
		accDelta, haveD := stateDict[fmt.Sprintf("acc_delta.%d", i)]

		if !haveS && !haveD {
			// Will be initialized to zeros on first step
			continue
		}
		if haveS != haveD {
			return fmt.Errorf("optim: incomplete accumulator pair for parameter %d (%q)", i, param.Name())
		}

		if !squareAvg.Shape().Equal(param.Tensor().Shape()) || !accDelta.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("optim: accumulator shape mismatch for parameter %d (%q): parameter %v, square_avg %v, acc_delta %v: %w",
				i, param.Name(), param.Tensor().Shape(), squareAvg.Shape(), accDelta.Shape(), tensor.ErrShapeMismatch)
		}

		a.state[param] = &accumulatorPair[T]{
			squareAvg: squareAvg.Clone(),
			accDelta:  accDelta.Clone(),
		}
	}

	return nil
}
