// Package nn implements the neural network building blocks used by the
// auto-encoder: the Module interface, named trainable Parameters, the Linear
// layer, and activation modules.
package nn

import "github.com/lumen-ml/lumen/internal/tensor"

// Module is the base interface for neural network components.
//
// Type parameter B is the compute backend; training code instantiates
// modules with the autodiff decorator so forward passes are recorded.
type Module[B tensor.Backend] interface {
	// Forward computes the module output for a batch input.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters of this module. Modules
	// without parameters (activations) return an empty slice.
	Parameters() []*Parameter[B]
}
