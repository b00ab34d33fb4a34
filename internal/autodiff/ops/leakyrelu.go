package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// LeakyReLUOp represents the leaky rectifier: output = x if x > 0 else a*x.
//
// d/dx = 1 for positive inputs and negSlope otherwise; the kink at zero
// takes the negative-side subgradient.
type LeakyReLUOp struct {
	input    *tensor.RawTensor
	output   *tensor.RawTensor
	negSlope float32
}

// NewLeakyReLUOp creates a new LeakyReLUOp.
func NewLeakyReLUOp(input, output *tensor.RawTensor, negSlope float32) *LeakyReLUOp {
	return &LeakyReLUOp{input: input, output: output, negSlope: negSlope}
}

// Backward scales the gradient by the local slope.
func (op *LeakyReLUOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustNewRaw(op.input.Shape())
	x, g, dst := op.input.Data(), outputGrad.Data(), grad.Data()
	for i := range dst {
		if x[i] > 0 {
			dst[i] = g[i]
		} else {
			dst[i] = op.negSlope * g[i]
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *LeakyReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the activated tensor.
func (op *LeakyReLUOp) Output() *tensor.RawTensor { return op.output }
