// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation keeps references to its input and output raw tensors from
// the forward pass and knows how to turn the gradient of its output into
// gradients of its inputs.
package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// Operation is one node of the recorded computation.
type Operation interface {
	// Backward computes gradients for the inputs given the output gradient.
	// The returned slice is index-aligned with Inputs().
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// MultiOutputOperation is an operation producing several outputs, such as
// Chunk. The tape collects gradients for all outputs before calling
// BackwardMulti; Backward is never used for these.
type MultiOutputOperation interface {
	Operation

	// Outputs returns all output tensors of this operation.
	Outputs() []*tensor.RawTensor

	// BackwardMulti computes input gradients given gradients for every
	// output. Missing output gradients are zero-filled by the tape.
	BackwardMulti(outputGrads []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
