package optim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/tensor"
)

// newParam32 creates a single float32 parameter from a slice.
func newParam32(t *testing.T, name string, values []float32) *nn.Parameter[float32] {
	t.Helper()
	x, err := tensor.FromSlice(values, tensor.Shape{len(values)})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return nn.NewParameter(name, x)
}

// setGrad32 attaches a gradient built from a slice.
func setGrad32(t *testing.T, param *nn.Parameter[float32], values []float32) {
	t.Helper()
	grad, err := tensor.FromSlice(values, param.Tensor().Shape())
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	param.SetGrad(grad)
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := newParam32(t, "x", []float32{2.0})

	optimizer, err := optim.NewSGD([]*nn.Parameter[float32]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.0})
	if err != nil {
		t.Fatalf("NewSGD failed: %v", err)
	}

	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	actual := param.Tensor().Data()[0]
	if !floatEqual(float64(actual), 1.9, 1e-6) {
		t.Errorf("SGD update: got %f, want 1.9", actual)
	}
}

// TestSGD_WithMomentum tests SGD with momentum over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewSGD([]*nn.Parameter[float32]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	if err != nil {
		t.Fatalf("NewSGD failed: %v", err)
	}

	// First step:
	// v_1 = 0.9 * 0 + 1.0 = 1.0
	// x_1 = 1.0 - 0.1 * 1.0 = 0.9
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.9, 1e-6) {
		t.Errorf("SGD momentum step 1: got %f, want 0.9", got)
	}

	// Second step:
	// v_2 = 0.9 * 1.0 + 1.0 = 1.9
	// x_2 = 0.9 - 0.1 * 1.9 = 0.71
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.71, 1e-5) {
		t.Errorf("SGD momentum step 2: got %f, want 0.71", got)
	}
}

// TestSGD_GetSetLR tests learning rate getter/setter.
func TestSGD_GetSetLR(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewSGD([]*nn.Parameter[float32]{param}, optim.SGDConfig{LR: 0.01})
	if err != nil {
		t.Fatalf("NewSGD failed: %v", err)
	}

	if optimizer.GetLR() != 0.01 {
		t.Errorf("GetLR: got %f, want 0.01", optimizer.GetLR())
	}
	optimizer.SetLR(0.001)
	if optimizer.GetLR() != 0.001 {
		t.Errorf("GetLR after SetLR: got %f, want 0.001", optimizer.GetLR())
	}
}

// TestSGD_InvalidMomentum tests momentum validation.
func TestSGD_InvalidMomentum(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	_, err := optim.NewSGD([]*nn.Parameter[float32]{param}, optim.SGDConfig{LR: 0.1, Momentum: 1.0})
	if !errors.Is(err, optim.ErrInvalidConfig) {
		t.Errorf("NewSGD with momentum 1.0: err = %v, want ErrInvalidConfig", err)
	}
}

// TestAdagrad_TwoSteps tests two hand-computed Adagrad updates.
func TestAdagrad_TwoSteps(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewAdagrad([]*nn.Parameter[float32]{param},
		optim.AdagradConfig{LR: 0.1, Eps: 1e-10})
	if err != nil {
		t.Fatalf("NewAdagrad failed: %v", err)
	}

	// Step 1: sum = 1, x = 1 - 0.1 * 1/sqrt(1) = 0.9
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.9, 1e-6) {
		t.Errorf("Adagrad step 1: got %f, want 0.9", got)
	}

	// Step 2: sum = 2, x = 0.9 - 0.1 * 1/sqrt(2) ≈ 0.829289
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.8292893, 1e-5) {
		t.Errorf("Adagrad step 2: got %f, want 0.829289", got)
	}
}

// TestRMSProp_SingleStep tests one hand-computed RMSProp update.
func TestRMSProp_SingleStep(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewRMSProp([]*nn.Parameter[float32]{param},
		optim.RMSPropConfig{LR: 0.01, Alpha: 0.99, Eps: 1e-8})
	if err != nil {
		t.Fatalf("NewRMSProp failed: %v", err)
	}

	// sq = 0.99*0 + 0.01*1 = 0.01
	// x  = 1 - 0.01 * 1/(sqrt(0.01) + 1e-8) ≈ 0.9
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.9, 1e-5) {
		t.Errorf("RMSProp step 1: got %f, want 0.9", got)
	}
}

// TestAdam_SimpleUpdate tests the first Adam step with bias correction.
func TestAdam_SimpleUpdate(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewAdam([]*nn.Parameter[float32]{param},
		optim.AdamConfig{LR: 0.001, Betas: [2]float64{0.9, 0.999}, Eps: 1e-8})
	if err != nil {
		t.Fatalf("NewAdam failed: %v", err)
	}

	// m_1 = 0.1, v_1 = 0.001; after bias correction m_hat = v_hat = 1.0
	// x_new = 1.0 - 0.001 * 1.0 / (sqrt(1.0) + 1e-8) ≈ 0.999
	setGrad32(t, param, []float32{1.0})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := param.Tensor().Data()[0]; !floatEqual(float64(got), 0.999, 1e-5) {
		t.Errorf("Adam first step: got %f, want 0.999", got)
	}
}

// TestAdam_Timestep tests that the timestep advances once per Step.
func TestAdam_Timestep(t *testing.T) {
	param := newParam32(t, "x", []float32{1.0})

	optimizer, err := optim.NewAdam([]*nn.Parameter[float32]{param}, optim.AdamConfig{LR: 0.01})
	if err != nil {
		t.Fatalf("NewAdam failed: %v", err)
	}

	if optimizer.GetTimestep() != 0 {
		t.Errorf("initial timestep: got %d, want 0", optimizer.GetTimestep())
	}
	for i := 1; i <= 3; i++ {
		setGrad32(t, param, []float32{1.0})
		if err := optimizer.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if optimizer.GetTimestep() != i {
			t.Errorf("after step %d, timestep: got %d, want %d", i, optimizer.GetTimestep(), i)
		}
	}
}

// TestConvergence_SimpleQuadratic verifies every optimizer can minimize
// f(x) = x² from x = 3. The minimum is at x = 0.
func TestConvergence_SimpleQuadratic(t *testing.T) {
	type testCase struct {
		name  string
		steps int
		bound float64
		make  func(params []*nn.Parameter[float32]) (optim.Optimizer, error)
	}

	cases := []testCase{
		{"SGD", 100, 0.1, func(params []*nn.Parameter[float32]) (optim.Optimizer, error) {
			return optim.NewSGD(params, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
		}},
		{"Adagrad", 100, 0.01, func(params []*nn.Parameter[float32]) (optim.Optimizer, error) {
			return optim.NewAdagrad(params, optim.AdagradConfig{LR: 0.5})
		}},
		{"RMSProp", 200, 0.01, func(params []*nn.Parameter[float32]) (optim.Optimizer, error) {
			return optim.NewRMSProp(params, optim.RMSPropConfig{LR: 0.1})
		}},
		{"Adadelta", 500, 0.01, func(params []*nn.Parameter[float32]) (optim.Optimizer, error) {
			return optim.NewAdadelta(params, optim.AdadeltaConfig{Rho: 0.9, Eps: 1e-5})
		}},
		{"Adam", 100, 0.1, func(params []*nn.Parameter[float32]) (optim.Optimizer, error) {
			return optim.NewAdam(params, optim.AdamConfig{LR: 0.1})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			param := newParam32(t, "x", []float32{3.0})

			optimizer, err := tc.make([]*nn.Parameter[float32]{param})
			if err != nil {
				t.Fatalf("constructor failed: %v", err)
			}

			for i := 0; i < tc.steps; i++ {
				// f(x) = x², df/dx = 2x
				setGrad32(t, param, []float32{2.0 * param.Tensor().Data()[0]})
				if err := optimizer.Step(); err != nil {
					t.Fatalf("Step failed: %v", err)
				}
				optimizer.ZeroGrad()
			}

			final := param.Tensor().Data()[0]
			if math.Abs(float64(final)) > tc.bound {
				t.Errorf("%s convergence: x = %f, expected within %v of 0", tc.name, final, tc.bound)
			}
		})
	}
}

// TestMultipleParameters tests an optimizer driving several parameters.
func TestMultipleParameters(t *testing.T) {
	param1 := newParam32(t, "x1", []float32{1.0, 2.0})
	param2 := newParam32(t, "x2", []float32{3.0})

	optimizer, err := optim.NewSGD([]*nn.Parameter[float32]{param1, param2},
		optim.SGDConfig{LR: 0.1})
	if err != nil {
		t.Fatalf("NewSGD failed: %v", err)
	}

	setGrad32(t, param1, []float32{1.0, 2.0})
	setGrad32(t, param2, []float32{0.5})
	if err := optimizer.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// param1: [1.0, 2.0] - 0.1 * [1.0, 2.0] = [0.9, 1.8]
	p1 := param1.Tensor().Data()
	if !floatEqual(float64(p1[0]), 0.9, 1e-6) || !floatEqual(float64(p1[1]), 1.8, 1e-6) {
		t.Errorf("param1: got [%f, %f], want [0.9, 1.8]", p1[0], p1[1])
	}

	// param2: 3.0 - 0.1 * 0.5 = 2.95
	p2 := param2.Tensor().Data()
	if !floatEqual(float64(p2[0]), 2.95, 1e-6) {
		t.Errorf("param2: got %f, want 2.95", p2[0])
	}
}
