package cpu

import (
	"math"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// LeakyReLU passes positive inputs through and scales negative inputs by
// negSlope.
func (cpu *Backend) LeakyReLU(x *tensor.RawTensor, negSlope float32) *tensor.RawTensor {
	return unary(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return negSlope * v
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (cpu *Backend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, func(v float32) float32 {
		return float32(1.0 / (1.0 + math.Exp(float64(-v))))
	})
}
