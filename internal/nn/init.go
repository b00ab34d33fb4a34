package nn

import (
	"math/rand"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Normal returns a tensor with elements drawn from N(0, stddev) using the
// given source. The auto-encoder initializes every weight matrix this way.
func Normal[B tensor.Backend](rng *rand.Rand, shape tensor.Shape, stddev float32, backend B) *tensor.Tensor[B] {
	t := tensor.RandnFrom(rng, shape, backend)
	data := t.Data()
	for i := range data {
		data[i] *= stddev
	}
	return t
}

// Zeros returns a zero tensor, the conventional bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[B] {
	return tensor.Zeros(shape, backend)
}
