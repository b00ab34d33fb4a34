package nn

import "github.com/lumen-ml/lumen/internal/tensor"

// LeakyReLU passes positive inputs unchanged and scales negative inputs by
// NegSlope, avoiding dead units in the hidden layers.
type LeakyReLU[B tensor.Backend] struct {
	NegSlope float32
}

// DefaultNegSlope matches the conventional leaky rectifier coefficient.
const DefaultNegSlope = 0.2

// NewLeakyReLU creates a LeakyReLU with the default negative slope.
func NewLeakyReLU[B tensor.Backend]() *LeakyReLU[B] {
	return &LeakyReLU[B]{NegSlope: DefaultNegSlope}
}

// Forward applies the activation.
func (r *LeakyReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	raw := input.Backend().LeakyReLU(input.Raw(), r.NegSlope)
	return tensor.New(raw, input.Backend())
}

// Parameters returns an empty slice.
func (r *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid squashes values into (0, 1). The decoder's final activation, which
// keeps reconstructions in the normalized pixel range.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies the activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	raw := input.Backend().Sigmoid(input.Raw())
	return tensor.New(raw, input.Backend())
}

// Parameters returns an empty slice.
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}
