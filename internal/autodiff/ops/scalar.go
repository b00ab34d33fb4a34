package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// AddScalarOp represents output = x + c for a scalar constant c.
// The constant is not differentiated; the gradient passes through unchanged.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(input, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: input, output: output}
}

// Backward passes the gradient through.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// Inputs returns the input tensor [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns x + c.
func (op *AddScalarOp) Output() *tensor.RawTensor { return op.output }

// MulScalarOp represents output = x * c for a scalar constant c.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	c      float32
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input, output *tensor.RawTensor, c float32) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, c: c}
}

// Backward scales the gradient by c.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.c)}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns x * c.
func (op *MulScalarOp) Output() *tensor.RawTensor { return op.output }

// DivScalarOp represents output = x / c for a scalar constant c.
type DivScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	c      float32
}

// NewDivScalarOp creates a new DivScalarOp.
func NewDivScalarOp(input, output *tensor.RawTensor, c float32) *DivScalarOp {
	return &DivScalarOp{input: input, output: output, c: c}
}

// Backward divides the gradient by c.
func (op *DivScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.DivScalar(outputGrad, op.c)}
}

// Inputs returns the input tensor [x].
func (op *DivScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns x / c.
func (op *DivScalarOp) Output() *tensor.RawTensor { return op.output }
