// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator.
//
// Backend wraps any tensor.Backend and records every operation on a
// GradientTape during the forward pass. Walking the tape in reverse applies
// the chain rule and yields a gradient for every tensor that contributed to
// the output.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := model.Loss(batch)
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/lumen-ml/lumen/internal/autodiff/ops"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Backend wraps an inner backend and adds gradient tracking. It satisfies
// tensor.Backend itself, so model code is oblivious to whether it runs
// recorded or not.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff Backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for recording control.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// Reshape changes a tensor's shape and records the operation.
func (b *Backend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Transpose permutes dimensions and records the operation.
func (b *Backend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	result := b.inner.Transpose(x, axes...)
	b.tape.Record(ops.NewTransposeOp(x, result, axes))
	return result
}

// AddScalar adds a constant and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	result := b.inner.AddScalar(x, c)
	b.tape.Record(ops.NewAddScalarOp(x, result))
	return result
}

// MulScalar multiplies by a constant and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	result := b.inner.MulScalar(x, c)
	b.tape.Record(ops.NewMulScalarOp(x, result, c))
	return result
}

// DivScalar divides by a constant and records the operation.
func (b *Backend[B]) DivScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	result := b.inner.DivScalar(x, c)
	b.tape.Record(ops.NewDivScalarOp(x, result, c))
	return result
}

// Log computes the natural logarithm and records the operation.
func (b *Backend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Log(x)
	b.tape.Record(ops.NewLogOp(x, result))
	return result
}

// Abs computes the absolute value and records the operation.
func (b *Backend[B]) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Abs(x)
	b.tape.Record(ops.NewAbsOp(x, result))
	return result
}

// LeakyReLU applies the leaky rectifier and records the operation.
func (b *Backend[B]) LeakyReLU(x *tensor.RawTensor, negSlope float32) *tensor.RawTensor {
	result := b.inner.LeakyReLU(x, negSlope)
	b.tape.Record(ops.NewLeakyReLUOp(x, result, negSlope))
	return result
}

// Sigmoid applies the sigmoid activation and records the operation.
func (b *Backend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sigmoid(x)
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// Mean reduces to the scalar mean and records the operation.
func (b *Backend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mean(x)
	b.tape.Record(ops.NewMeanOp(x, result))
	return result
}

// SumDim sums along a dimension. Not recorded: it only appears inside
// backward-pass gradient reduction, never in the forward graph.
func (b *Backend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.inner.SumDim(x, dim, keepDim)
}

// Chunk splits a tensor into equal parts and records the multi-output
// operation.
func (b *Backend[B]) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	outputs := b.inner.Chunk(x, n, dim)
	b.tape.Record(ops.NewChunkOp(x, n, dim, outputs))
	return outputs
}

// Cat concatenates tensors and records the operation.
func (b *Backend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Cat(tensors, dim)
	b.tape.Record(ops.NewCatOp(tensors, dim, result))
	return result
}
