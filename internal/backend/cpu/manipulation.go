package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Chunk splits x into n equal parts along dim. The dimension size must be
// divisible by n.
func (cpu *Backend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("chunk: invalid dimension %d for shape %v", dim, shape))
	}
	if n <= 0 || shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: cannot split dimension of size %d into %d equal parts", shape[dim], n))
	}

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	partSize := shape[dim] / n

	outShape := shape.Clone()
	outShape[dim] = partSize

	src := x.Data()
	outputs := make([]*tensor.RawTensor, n)
	for c := 0; c < n; c++ {
		part := tensor.MustNewRaw(outShape)
		dst := part.Data()
		for o := 0; o < outer; o++ {
			srcBase := (o*shape[dim] + c*partSize) * inner
			dstBase := o * partSize * inner
			copy(dst[dstBase:dstBase+partSize*inner], src[srcBase:srcBase+partSize*inner])
		}
		outputs[c] = part
	}
	return outputs
}

// Cat concatenates tensors along dim. All shapes must match outside dim.
func (cpu *Backend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors to concatenate")
	}
	first := tensors[0].Shape()
	if dim < 0 || dim >= len(first) {
		panic(fmt.Sprintf("cat: invalid dimension %d for shape %v", dim, first))
	}

	total := 0
	for _, t := range tensors {
		shape := t.Shape()
		if len(shape) != len(first) {
			panic(fmt.Sprintf("cat: rank mismatch: %v vs %v", first, shape))
		}
		for d := range shape {
			if d != dim && shape[d] != first[d] {
				panic(fmt.Sprintf("cat: shape mismatch outside dimension %d: %v vs %v", dim, first, shape))
			}
		}
		total += shape[dim]
	}

	outShape := first.Clone()
	outShape[dim] = total
	result := tensor.MustNewRaw(outShape)

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= first[d]
	}
	inner := 1
	for d := dim + 1; d < len(first); d++ {
		inner *= first[d]
	}

	dst := result.Data()
	offset := 0
	for _, t := range tensors {
		dimSize := t.Shape()[dim]
		src := t.Data()
		for o := 0; o < outer; o++ {
			srcBase := o * dimSize * inner
			dstBase := (o*total + offset) * inner
			copy(dst[dstBase:dstBase+dimSize*inner], src[srcBase:srcBase+dimSize*inner])
		}
		offset += dimSize
	}
	return result
}
