package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Mean reduces x to its mean over all elements. The result has shape {1}.
func (cpu *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{1})
	data := x.Data()
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	result.Data()[0] = float32(sum / float64(len(data)))
	return result
}

// SumDim sums x along one dimension. With keepDim the reduced dimension
// stays with size 1, otherwise it is removed.
func (cpu *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumdim: invalid dimension %d for shape %v", dim, shape))
	}

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	dimSize := shape[dim]
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	keptShape := shape.Clone()
	keptShape[dim] = 1
	result := tensor.MustNewRaw(keptShape)

	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		for k := 0; k < dimSize; k++ {
			base := (o*dimSize + k) * inner
			outBase := o * inner
			for in := 0; in < inner; in++ {
				dst[outBase+in] += src[base+in]
			}
		}
	}

	if keepDim {
		return result
	}
	squeezed := make(tensor.Shape, 0, len(shape)-1)
	for d, size := range keptShape {
		if d != dim {
			squeezed = append(squeezed, size)
		}
	}
	if len(squeezed) == 0 {
		squeezed = tensor.Shape{1}
	}
	return result.View(squeezed)
}
