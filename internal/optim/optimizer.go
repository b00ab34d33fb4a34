// Package optim implements gradient descent variants for training.
//
// Optimizers receive the gradient map produced by a backward pass and update
// parameter tensors in place. They are the only code that mutates model
// parameters after construction.
package optim

import (
	"github.com/lumen-ml/lumen/internal/nn"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient in the
	// map. Parameters absent from the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// LR returns the current learning rate.
	LR() float32
}

// gradientFor looks a parameter's gradient up by raw tensor identity.
// Returns nil when the parameter did not participate in the forward pass.
func gradientFor[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
