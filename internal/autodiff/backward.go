package autodiff

import "github.com/lumen-ml/lumen/internal/tensor"

// Backward computes gradients of output with respect to every tensor
// recorded on the tape. The output gradient is seeded with ones, which for
// the usual scalar loss means d(loss)/d(loss) = 1.
//
// The tape is left intact; callers clear it between steps.
func Backward[B tensor.Backend](output *tensor.Tensor[*Backend[B]], b *Backend[B]) map[*tensor.RawTensor]*tensor.RawTensor {
	seed := tensor.MustNewRaw(output.Shape())
	data := seed.Data()
	for i := range data {
		data[i] = 1
	}
	return b.tape.Backward(seed, b)
}
