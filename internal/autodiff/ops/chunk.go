package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// ChunkOp splits a tensor into n equal parts along a dimension. The encoder
// uses it to separate the packed mean and stddev halves of its final layer.
//
// Backward concatenates the output gradients back together along the same
// dimension.
type ChunkOp struct {
	input   *tensor.RawTensor
	n       int
	dim     int
	outputs []*tensor.RawTensor
}

// NewChunkOp creates a new ChunkOp.
func NewChunkOp(input *tensor.RawTensor, n, dim int, outputs []*tensor.RawTensor) *ChunkOp {
	return &ChunkOp{input: input, n: n, dim: dim, outputs: outputs}
}

// Inputs returns the input tensor [x].
func (op *ChunkOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the first chunk. The tape treats multi-output operations
// specially and never relies on this alone.
func (op *ChunkOp) Output() *tensor.RawTensor { return op.outputs[0] }

// Outputs returns all chunk tensors (implements MultiOutputOperation).
func (op *ChunkOp) Outputs() []*tensor.RawTensor { return op.outputs }

// Backward is unusable for multi-output operations; the tape must call
// BackwardMulti with gradients for every output.
func (op *ChunkOp) Backward(_ *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	panic("ChunkOp.Backward: multi-output operations require BackwardMulti")
}

// BackwardMulti concatenates the per-chunk gradients into the input gradient.
func (op *ChunkOp) BackwardMulti(outputGrads []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if len(outputGrads) != op.n {
		panic("ChunkOp.BackwardMulti: expected one gradient per chunk")
	}
	return []*tensor.RawTensor{backend.Cat(outputGrads, op.dim)}
}
