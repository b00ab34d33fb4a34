package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// SigmoidOp represents the sigmoid activation: output = 1 / (1 + exp(-x)).
//
// dσ/dx = σ(x) * (1 - σ(x)), computed from the saved output.
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Backward computes grad * output * (1 - output).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	out := op.output
	oneMinus := backend.AddScalar(backend.MulScalar(out, -1), 1)
	deriv := backend.Mul(out, oneMinus)
	return []*tensor.RawTensor{backend.Mul(outputGrad, deriv)}
}

// Inputs returns the input tensor [x].
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the activated tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }
