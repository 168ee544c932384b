// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the trainable Parameter type connecting a model's
// training loop to the optimizers in the optim package.
//
// # Overview
//
// A Parameter wraps a tensor that an optimizer is allowed to update. The
// training loop owns the value; once per mini-batch it computes a gradient
// (by whatever mechanism it likes) and attaches it with SetGrad, then asks
// the optimizer to step:
//
//	w := nn.NewParameter("weight", weightTensor)
//
//	for batch := range batches {
//	    grad := computeGradient(w, batch)
//	    w.SetGrad(grad)
//	    if err := optimizer.Step(); err != nil {
//	        log.Fatal(err)
//	    }
//	    optimizer.ZeroGrad()
//	}
package nn
