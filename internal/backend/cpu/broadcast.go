package cpu

import "github.com/lumen-ml/lumen/internal/tensor"

// broadcastBinary applies fn over a and b broadcast to the result's shape.
// The slow path: walks every output element and maps its coordinates back to
// the (possibly size-1) input dimensions.
func broadcastBinary(result, a, b *tensor.RawTensor, fn func(x, y float32) float32) {
	outShape := result.Shape()
	outStrides := result.Strides()
	ndim := len(outShape)

	aOffsets := broadcastOffsets(a.Shape(), outShape)
	bOffsets := broadcastOffsets(b.Shape(), outShape)

	aData, bData, out := a.Data(), b.Data(), result.Data()

	idx := make([]int, ndim)
	for i := range out {
		rem := i
		for d := 0; d < ndim; d++ {
			idx[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		aOff, bOff := 0, 0
		for d := 0; d < ndim; d++ {
			aOff += idx[d] * aOffsets[d]
			bOff += idx[d] * bOffsets[d]
		}
		out[i] = fn(aData[aOff], bData[bOff])
	}
}

// broadcastOffsets returns per-output-dimension strides into an input of the
// given shape. Broadcast dimensions (size 1, or missing on the left) get a
// zero stride so every output coordinate reads the same input element.
func broadcastOffsets(inShape, outShape tensor.Shape) []int {
	ndim := len(outShape)
	offset := ndim - len(inShape)
	inStrides := inShape.ComputeStrides()

	offsets := make([]int, ndim)
	for d := 0; d < ndim; d++ {
		inDim := d - offset
		if inDim < 0 || inShape[inDim] == 1 {
			offsets[d] = 0
		} else {
			offsets[d] = inStrides[inDim]
		}
	}
	return offsets
}
