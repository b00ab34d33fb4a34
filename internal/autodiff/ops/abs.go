package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// AbsOp represents the element-wise absolute value: output = |x|.
//
// The encoder uses it to force the stddev half of its output non-negative.
// d|x|/dx = sign(x), with 0 at x = 0.
type AbsOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAbsOp creates a new AbsOp.
func NewAbsOp(input, output *tensor.RawTensor) *AbsOp {
	return &AbsOp{input: input, output: output}
}

// Backward multiplies the gradient by the sign of the input.
func (op *AbsOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustNewRaw(op.input.Shape())
	x, g, dst := op.input.Data(), outputGrad.Data(), grad.Data()
	for i := range dst {
		switch {
		case x[i] > 0:
			dst[i] = g[i]
		case x[i] < 0:
			dst[i] = -g[i]
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *AbsOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns |x|.
func (op *AbsOp) Output() *tensor.RawTensor { return op.output }
