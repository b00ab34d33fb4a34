// Package vae implements a variational auto-encoder built from fully
// connected layers.
//
// The encoder maps an input vector to the mean and standard deviation of a
// diagonal Gaussian over the code space. A code is drawn from that Gaussian
// with the reparameterization trick and the decoder maps it back to the
// input space. Training minimizes a weighted sum of reconstruction error and
// the KL divergence between the unit Gaussian and the encoder's output
// distribution.
package vae

import (
	"fmt"
	"math/rand"

	"github.com/lumen-ml/lumen/internal/nn"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// WeightStddev is the standard deviation of the normal distribution that
// initializes every layer's weights.
const WeightStddev = 0.05

// Model is an MLP variational auto-encoder.
//
// Both the encoder and decoder have three linear layers. The two hidden
// widths interpolate between the input and code dimensions at one quarter
// and three quarters of the distance, so a 784 to 36 model uses hidden
// widths 597 and 223. The encoder's last layer emits 2*codeDim values,
// which split into the code mean and (unsigned) standard deviation.
type Model[B tensor.Backend] struct {
	inputDim int
	codeDim  int

	enc0 *nn.Linear[B]
	enc1 *nn.Linear[B]
	enc2 *nn.Linear[B]
	dec0 *nn.Linear[B]
	dec1 *nn.Linear[B]
	dec2 *nn.Linear[B]

	act     *nn.LeakyReLU[B]
	outAct  *nn.Sigmoid[B]
	rng     *rand.Rand
	backend B
}

// New creates a model for inputDim-wide samples and a codeDim-wide latent
// space. Panics if codeDim is not strictly smaller than inputDim. The rng
// seeds the weights and drives code sampling.
func New[B tensor.Backend](inputDim, codeDim int, rng *rand.Rand, backend B) *Model[B] {
	if codeDim >= inputDim {
		panic(fmt.Sprintf("vae.New: code dimension %d must be smaller than input dimension %d", codeDim, inputDim))
	}

	gap := inputDim - codeDim
	hidden1 := inputDim - gap/4
	hidden2 := inputDim - 3*gap/4

	return &Model[B]{
		inputDim: inputDim,
		codeDim:  codeDim,
		enc0:     nn.NewLinear("enc0", inputDim, hidden1, WeightStddev, rng, backend),
		enc1:     nn.NewLinear("enc1", hidden1, hidden2, WeightStddev, rng, backend),
		enc2:     nn.NewLinear("enc2", hidden2, 2*codeDim, WeightStddev, rng, backend),
		dec0:     nn.NewLinear("dec0", codeDim, hidden2, WeightStddev, rng, backend),
		dec1:     nn.NewLinear("dec1", hidden2, hidden1, WeightStddev, rng, backend),
		dec2:     nn.NewLinear("dec2", hidden1, inputDim, WeightStddev, rng, backend),
		act:      nn.NewLeakyReLU[B](),
		outAct:   nn.NewSigmoid[B](),
		rng:      rng,
		backend:  backend,
	}
}

// InputDim returns the width of the input vectors.
func (m *Model[B]) InputDim() int {
	return m.inputDim
}

// CodeDim returns the width of the latent code.
func (m *Model[B]) CodeDim() int {
	return m.codeDim
}

// Backend returns the backend the model computes on.
func (m *Model[B]) Backend() B {
	return m.backend
}

// Encode maps a [batch, inputDim] input to the mean and standard deviation
// of the code distribution, both [batch, codeDim]. The standard deviation is
// the absolute value of the raw network output, so it is never negative.
func (m *Model[B]) Encode(input *tensor.Tensor[B]) (mean, stddev *tensor.Tensor[B]) {
	h := m.act.Forward(m.enc0.Forward(input))
	h = m.act.Forward(m.enc1.Forward(h))
	out := m.enc2.Forward(h)

	halves := out.Chunk(2, 1)
	return halves[0], halves[1].Abs()
}

// SampleEncoding draws one code per row with the reparameterization trick:
// code = mean + stddev * eps, eps ~ N(0, 1). The noise enters the graph as a
// constant, so gradients flow through mean and stddev only. Panics when the
// mean and stddev shapes differ.
func (m *Model[B]) SampleEncoding(mean, stddev *tensor.Tensor[B]) *tensor.Tensor[B] {
	if !mean.Shape().Equal(stddev.Shape()) {
		panic(fmt.Sprintf("vae.SampleEncoding: mean shape %v does not match stddev shape %v", mean.Shape(), stddev.Shape()))
	}
	eps := tensor.RandnFrom(m.rng, mean.Shape(), m.backend)
	return mean.Add(stddev.Mul(eps))
}

// Decode maps [batch, codeDim] codes to [batch, inputDim] reconstructions in
// the (0, 1) range.
func (m *Model[B]) Decode(code *tensor.Tensor[B]) *tensor.Tensor[B] {
	h := m.act.Forward(m.dec0.Forward(code))
	h = m.act.Forward(m.dec1.Forward(h))
	return m.outAct.Forward(m.dec2.Forward(h))
}

// Reconstruct encodes, samples and decodes a batch in one call.
func (m *Model[B]) Reconstruct(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	mean, stddev := m.Encode(input)
	return m.Decode(m.SampleEncoding(mean, stddev))
}

// Loss computes the training objective for one batch:
//
//	(3 * MSE(input, reconstruction) + KL(N(0,1) || N(mean, stddev))) / 4
//
// The KL term per coordinate is log(s) + (1 + m²)/(2s²) - 1/2, averaged over
// the batch and code dimensions.
func (m *Model[B]) Loss(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	mean, stddev := m.Encode(input)
	reconstruction := m.Decode(m.SampleEncoding(mean, stddev))

	diff := input.Sub(reconstruction)
	mse := diff.Mul(diff).Mean()

	kl := stddev.Log().
		Add(mean.Mul(mean).AddScalar(1).Div(stddev.Mul(stddev).MulScalar(2))).
		AddScalar(-0.5).
		Mean()

	return mse.MulScalar(3).Add(kl).DivScalar(4)
}

// Parameters returns all twelve trainable tensors.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, layer := range m.layers() {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// NamedParameters returns the parameters keyed by name, e.g. "enc0.weight".
func (m *Model[B]) NamedParameters() map[string]*nn.Parameter[B] {
	named := make(map[string]*nn.Parameter[B])
	for _, p := range m.Parameters() {
		named[p.Name()] = p
	}
	return named
}

func (m *Model[B]) layers() []*nn.Linear[B] {
	return []*nn.Linear[B]{m.enc0, m.enc1, m.enc2, m.dec0, m.dec1, m.dec2}
}
