package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// CatOp concatenates tensors along a dimension: output = cat(inputs, dim).
//
// Backward splits the output gradient back into per-input slices of the
// original sizes along dim.
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a new CatOp.
func NewCatOp(inputs []*tensor.RawTensor, dim int, output *tensor.RawTensor) *CatOp {
	return &CatOp{inputs: inputs, output: output, dim: dim}
}

// Backward slices the output gradient into per-input gradients.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	outShape := outputGrad.Shape()
	outer := 1
	for d := 0; d < op.dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := op.dim + 1; d < len(outShape); d++ {
		inner *= outShape[d]
	}
	total := outShape[op.dim]

	grads := make([]*tensor.RawTensor, len(op.inputs))
	src := outputGrad.Data()
	offset := 0
	for i, in := range op.inputs {
		dimSize := in.Shape()[op.dim]
		grad := tensor.MustNewRaw(in.Shape())
		dst := grad.Data()
		for o := 0; o < outer; o++ {
			srcBase := (o*total + offset) * inner
			dstBase := o * dimSize * inner
			copy(dst[dstBase:dstBase+dimSize*inner], src[srcBase:srcBase+dimSize*inner])
		}
		grads[i] = grad
		offset += dimSize
	}
	return grads
}

// Inputs returns the concatenated input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the concatenated tensor.
func (op *CatOp) Output() *tensor.RawTensor { return op.output }
