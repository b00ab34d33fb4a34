package cpu

import (
	"math"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// AddScalar adds c to every element.
func (cpu *Backend) AddScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	return unary(x, func(v float32) float32 { return v + c })
}

// MulScalar multiplies every element by c.
func (cpu *Backend) MulScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	return unary(x, func(v float32) float32 { return v * c })
}

// DivScalar divides every element by c.
func (cpu *Backend) DivScalar(x *tensor.RawTensor, c float32) *tensor.RawTensor {
	return unary(x, func(v float32) float32 { return v / c })
}

// Log computes the element-wise natural logarithm. Non-positive inputs
// produce -Inf or NaN, which propagate to the loss unmasked.
func (cpu *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, func(v float32) float32 { return float32(math.Log(float64(v))) })
}

// Abs computes the element-wise absolute value.
func (cpu *Backend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, func(v float32) float32 {
		if v < 0 {
			return -v
		}
		return v
	})
}

// unary applies fn element-wise into a fresh tensor.
func unary(x *tensor.RawTensor, fn func(v float32) float32) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape())
	src, dst := x.Data(), result.Data()
	for i, v := range src {
		dst[i] = fn(v)
	}
	return result
}
