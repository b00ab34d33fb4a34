package cpu_test

import (
	"math"
	"testing"

	"github.com/lumen-ml/lumen/internal/backend/cpu"
	"github.com/lumen-ml/lumen/internal/tensor"
)

func raw(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape)
	if err != nil {
		t.Fatalf("NewRaw(%v): %v", shape, err)
	}
	copy(r.Data(), data)
	return r
}

func assertData(t *testing.T, got *tensor.RawTensor, want []float32, eps float32) {
	t.Helper()
	data := got.Data()
	if len(data) != len(want) {
		t.Fatalf("got %d elements, want %d", len(data), len(want))
	}
	for i := range want {
		diff := data[i] - want[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > eps {
			t.Errorf("element %d: got %f, want %f", i, data[i], want[i])
		}
	}
}

func TestBinaryOps(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	assertData(t, backend.Add(a, b), []float32{6, 8, 10, 12}, 0)
	assertData(t, backend.Sub(a, b), []float32{-4, -4, -4, -4}, 0)
	assertData(t, backend.Mul(a, b), []float32{5, 12, 21, 32}, 0)
	assertData(t, backend.Div(b, a), []float32{5, 3, 7.0 / 3.0, 2}, 1e-6)
}

func TestBinaryOps_DoNotMutateInputs(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2}, tensor.Shape{2})
	b := raw(t, []float32{3, 4}, tensor.Shape{2})

	backend.Add(a, b)

	assertData(t, a, []float32{1, 2}, 0)
	assertData(t, b, []float32{3, 4}, 0)
}

func TestAdd_BroadcastRow(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	row := raw(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	result := backend.Add(a, row)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", result.Shape())
	}
	assertData(t, result, []float32{11, 22, 33, 14, 25, 36}, 0)
}

func TestMul_BroadcastColumn(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	col := raw(t, []float32{10, 100}, tensor.Shape{2, 1})

	assertData(t, backend.Mul(a, col), []float32{10, 20, 300, 400}, 0)
}

func TestMatMul(t *testing.T) {
	backend := cpu.New()
	// (2x3) @ (3x2)
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := raw(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	result := backend.MatMul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", result.Shape())
	}
	assertData(t, result, []float32{58, 64, 139, 154}, 1e-5)
}

func TestTranspose2D(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(a)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertData(t, result, []float32{1, 4, 2, 5, 3, 6}, 0)
}

func TestReshape(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Reshape(a, tensor.Shape{3, 2})
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertData(t, result, []float32{1, 2, 3, 4, 5, 6}, 0)
}

func TestScalarOps(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, -2, 3}, tensor.Shape{3})

	assertData(t, backend.AddScalar(a, 1), []float32{2, -1, 4}, 0)
	assertData(t, backend.MulScalar(a, -2), []float32{-2, 4, -6}, 0)
	assertData(t, backend.DivScalar(a, 2), []float32{0.5, -1, 1.5}, 0)
}

func TestLogAndAbs(t *testing.T) {
	backend := cpu.New()

	a := raw(t, []float32{1, float32(math.E), 10}, tensor.Shape{3})
	assertData(t, backend.Log(a), []float32{0, 1, float32(math.Log(10))}, 1e-6)

	b := raw(t, []float32{-1.5, 0, 2}, tensor.Shape{3})
	assertData(t, backend.Abs(b), []float32{1.5, 0, 2}, 0)
}

func TestLeakyReLU(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5})

	assertData(t, backend.LeakyReLU(a, 0.2), []float32{-0.4, -0.1, 0, 0.5, 2}, 1e-6)
}

func TestSigmoid(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{0, 100, -100, 1}, tensor.Shape{4})

	result := backend.Sigmoid(a)
	want := []float32{0.5, 1, 0, float32(1.0 / (1.0 + math.Exp(-1)))}
	assertData(t, result, want, 1e-5)
}

func TestMean(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Mean(a)
	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", result.Shape())
	}
	assertData(t, result, []float32{2.5}, 1e-6)
}

func TestSumDim(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	sum0 := backend.SumDim(a, 0, false)
	if !sum0.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("SumDim(0) shape = %v, want [3]", sum0.Shape())
	}
	assertData(t, sum0, []float32{5, 7, 9}, 0)

	sum1 := backend.SumDim(a, 1, true)
	if !sum1.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("SumDim(1, keep) shape = %v, want [2 1]", sum1.Shape())
	}
	assertData(t, sum1, []float32{6, 15}, 0)
}

func TestChunk(t *testing.T) {
	backend := cpu.New()
	// Two rows of [m0 m1 s0 s1], chunked along dim 1.
	a := raw(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})

	parts := backend.Chunk(a, 2, 1)
	if len(parts) != 2 {
		t.Fatalf("Chunk returned %d parts, want 2", len(parts))
	}
	if !parts[0].Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("part shape = %v, want [2 2]", parts[0].Shape())
	}
	assertData(t, parts[0], []float32{1, 2, 5, 6}, 0)
	assertData(t, parts[1], []float32{3, 4, 7, 8}, 0)
}

func TestChunk_IndivisiblePanics(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3}, tensor.Shape{3})

	defer func() {
		if recover() == nil {
			t.Error("Chunk should panic when the dimension is not divisible")
		}
	}()
	backend.Chunk(a, 2, 0)
}

func TestCat(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 5, 6}, tensor.Shape{2, 2})
	b := raw(t, []float32{3, 4, 7, 8}, tensor.Shape{2, 2})

	result := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	if !result.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("shape = %v, want [2 4]", result.Shape())
	}
	assertData(t, result, []float32{1, 2, 3, 4, 5, 6, 7, 8}, 0)
}

func TestChunkCat_RoundTrip(t *testing.T) {
	backend := cpu.New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, tensor.Shape{3, 4})

	parts := backend.Chunk(a, 2, 1)
	back := backend.Cat(parts, 1)
	assertData(t, back, a.Data(), 0)
}
