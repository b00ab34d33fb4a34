package autodiff_test

import (
	"testing"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/backend/cpu"
	"github.com/lumen-ml/lumen/internal/tensor"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

// checkGradient compares the taped gradient of loss = build(x) against
// central finite differences, element by element. build must be
// deterministic and return a single-element tensor.
func checkGradient(t *testing.T, backend adBackend, xData []float32, shape tensor.Shape, build func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend]) {
	t.Helper()
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()
	x, err := tensor.FromSlice(xData, shape, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	loss := build(x)
	tape.StopRecording()

	grads := autodiff.Backward(loss, backend)
	g := grads[x.Raw()]
	if g == nil {
		t.Fatal("no gradient for input")
	}
	tape.Clear()

	eval := func(data []float32) float32 {
		xp, err := tensor.FromSlice(data, shape, backend)
		if err != nil {
			t.Fatalf("FromSlice: %v", err)
		}
		return build(xp).Item()
	}

	// float32 arithmetic leaves roughly 3 significant digits after the
	// finite-difference subtraction, hence the loose tolerance.
	const eps = 1e-2
	const tol = 2e-2
	for i := range xData {
		perturbed := make([]float32, len(xData))
		copy(perturbed, xData)

		perturbed[i] = xData[i] + eps
		lossPlus := eval(perturbed)
		perturbed[i] = xData[i] - eps
		lossMinus := eval(perturbed)

		numerical := (lossPlus - lossMinus) / (2 * eps)
		taped := g.Data()[i]

		diff := taped - numerical
		if diff < 0 {
			diff = -diff
		}
		scale := float32(1)
		if numerical > 1 || numerical < -1 {
			if numerical < 0 {
				scale = -numerical
			} else {
				scale = numerical
			}
		}
		if diff > tol*scale {
			t.Errorf("element %d: taped gradient %f, numerical %f", i, taped, numerical)
		}
	}
}

func TestGradientCheck_SquareMean(t *testing.T) {
	backend := autodiff.New(cpu.New())
	checkGradient(t, backend, []float32{0.5, -1.5, 2.0, 0.7}, tensor.Shape{4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return x.Mul(x).Mean()
		})
}

func TestGradientCheck_MatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())
	w, _ := tensor.FromSlice([]float32{0.3, -0.8, 1.2, 0.5, -0.1, 0.9}, tensor.Shape{3, 2}, backend)

	checkGradient(t, backend, []float32{1, -2, 0.5, 0.25, 1.5, -0.75}, tensor.Shape{2, 3},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return x.MatMul(w).Mean()
		})
}

func TestGradientCheck_Sigmoid(t *testing.T) {
	backend := autodiff.New(cpu.New())
	checkGradient(t, backend, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return tensor.New(x.Backend().Sigmoid(x.Raw()), x.Backend()).Mean()
		})
}

func TestGradientCheck_LeakyReLU(t *testing.T) {
	backend := autodiff.New(cpu.New())
	// Points away from the kink at 0, where the derivative is undefined.
	checkGradient(t, backend, []float32{-2, -0.7, 0.4, 1.8}, tensor.Shape{4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return tensor.New(x.Backend().LeakyReLU(x.Raw(), 0.2), x.Backend()).Mean()
		})
}

func TestGradientCheck_LogAbs(t *testing.T) {
	backend := autodiff.New(cpu.New())
	// log|x| is differentiable everywhere but 0.
	checkGradient(t, backend, []float32{-3, -0.8, 0.6, 2.5}, tensor.Shape{4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return x.Abs().Log().Mean()
		})
}

func TestGradientCheck_Division(t *testing.T) {
	backend := autodiff.New(cpu.New())
	d, _ := tensor.FromSlice([]float32{2, -1.5, 0.8, 3}, tensor.Shape{4}, backend)

	checkGradient(t, backend, []float32{1, 2, -0.5, 0.3}, tensor.Shape{4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return x.Div(d).Mean()
		})
}

func TestGradientCheck_ChunkProduct(t *testing.T) {
	backend := autodiff.New(cpu.New())
	checkGradient(t, backend, []float32{1, -0.5, 2, 0.8, 0.3, -1.2, 0.9, 1.5}, tensor.Shape{2, 4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			halves := x.Chunk(2, 1)
			return halves[0].Mul(halves[1]).Mean()
		})
}

// The KL divergence expression used by the auto-encoder loss, applied to a
// tensor whose halves play mean and stddev.
func TestGradientCheck_KLTerm(t *testing.T) {
	backend := autodiff.New(cpu.New())
	checkGradient(t, backend, []float32{0.3, -0.6, 1.1, -0.2, 0.9, 1.4, 0.7, 1.8}, tensor.Shape{2, 4},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			halves := x.Chunk(2, 1)
			mean, stddev := halves[0], halves[1].Abs()
			return stddev.Log().
				Add(mean.Mul(mean).AddScalar(1).Div(stddev.Mul(stddev).MulScalar(2))).
				AddScalar(-0.5).
				Mean()
		})
}

func TestGradientCheck_Transpose(t *testing.T) {
	backend := autodiff.New(cpu.New())
	w, _ := tensor.FromSlice([]float32{0.5, -1, 2, 0.25}, tensor.Shape{2, 2}, backend)

	checkGradient(t, backend, []float32{1, 2, 3, 4}, tensor.Shape{2, 2},
		func(x *tensor.Tensor[adBackend]) *tensor.Tensor[adBackend] {
			return x.T().MatMul(w).Mean()
		})
}
