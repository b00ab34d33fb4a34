package tensor

// Backend defines the operations a compute backend must provide. The set is
// exactly what the variational auto-encoder pipeline exercises; there is no
// speculative surface beyond it.
//
// Implementations:
//   - cpu.Backend: dense pure-Go kernels
//   - autodiff.Backend: decorator that records operations on a gradient tape
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Element-wise operations with a scalar constant.
	AddScalar(x *RawTensor, c float32) *RawTensor
	MulScalar(x *RawTensor, c float32) *RawTensor
	DivScalar(x *RawTensor, c float32) *RawTensor

	// Element-wise math.
	Log(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor

	// Activations.
	LeakyReLU(x *RawTensor, negSlope float32) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor

	// Reductions.
	Mean(x *RawTensor) *RawTensor                          // mean over all elements, shape {1}
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along one dimension

	// Manipulation.
	Chunk(x *RawTensor, n, dim int) []*RawTensor  // split into n equal parts
	Cat(tensors []*RawTensor, dim int) *RawTensor // concatenate along dimension

	// Name identifies the backend for diagnostics.
	Name() string
}
