package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// MeanOp reduces a tensor to its mean over all elements: output = mean(x),
// shape {1}. Both loss terms end in this reduction.
//
// Backward spreads the scalar gradient evenly: grad_x = grad / numElements.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient over the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustNewRaw(op.input.Shape())
	dst := grad.Data()
	g := outputGrad.Data()[0] / float32(len(dst))
	for i := range dst {
		dst[i] = g
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the mean, shape {1}.
func (op *MeanOp) Output() *tensor.RawTensor { return op.output }
