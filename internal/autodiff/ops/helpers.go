package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// reduceBroadcast reduces a gradient tensor to match the target input shape.
// Needed whenever broadcasting widened an input during the forward pass: the
// gradient contributions along broadcast dimensions must be summed back.
//
// Example: a[1,5] + b[3,5] -> c[3,5]; grad_a = sum over dim 0 of grad_c.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		// Clone so accumulation in the tape never aliases a shared buffer.
		return grad.Clone()
	}

	// Sum away leading dimensions the target does not have.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	// Sum dimensions where the target is 1 but the gradient is wider.
	shape := result.Shape()
	for d := 0; d < len(targetShape); d++ {
		if targetShape[d] == 1 && shape[d] > 1 {
			result = backend.SumDim(result, d, true)
			shape = result.Shape()
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// negate returns -grad.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.MulScalar(grad, -1)
}
