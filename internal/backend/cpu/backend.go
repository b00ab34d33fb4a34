// Package cpu implements the dense pure-Go CPU backend.
//
// Every operation allocates a fresh result tensor and leaves its inputs
// untouched. The autodiff decorator relies on that: recorded operations keep
// references to their input buffers and read them again during the backward
// pass.
package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Backend implements tensor.Backend with straightforward dense kernels.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with broadcasting.
func (cpu *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float32) float32 { return x / y })
}

// binary applies fn element-wise, broadcasting the inputs to a common shape.
func (cpu *Backend) binary(name string, a, b *tensor.RawTensor, fn func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := tensor.MustNewRaw(outShape)
	out := result.Data()

	if !needsBroadcast {
		aData, bData := a.Data(), b.Data()
		for i := range out {
			out[i] = fn(aData[i], bData[i])
		}
		return result
	}

	broadcastBinary(result, a, b, fn)
	return result
}

// Reshape returns a view of t with a new shape. Element count must match.
func (cpu *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}
	return t.View(newShape)
}

// Transpose permutes the dimensions of t. With no axes it reverses them.
func (cpu *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %d dimensions", len(axes), ndim))
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %d dimensions", ax, ndim))
		}
		outShape[i] = shape[ax]
	}

	result := tensor.MustNewRaw(outShape)
	src, dst := t.Data(), result.Data()
	inStrides := t.Strides()
	outStrides := result.Strides()

	idx := make([]int, ndim)
	for i := 0; i < len(dst); i++ {
		// Decompose the output flat index, then map through the permutation.
		rem := i
		for d := 0; d < ndim; d++ {
			idx[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		srcOffset := 0
		for d := 0; d < ndim; d++ {
			srcOffset += idx[d] * inStrides[axes[d]]
		}
		dst[i] = src[srcOffset]
	}

	return result
}
