package autodiff_test

import (
	"testing"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/backend/cpu"
	"github.com/lumen-ml/lumen/internal/tensor"
)

func TestBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name() = %s, want Autodiff(CPU)", backend.Name())
	}
}

func TestTape_Recording(t *testing.T) {
	tape := autodiff.New(cpu.New()).Tape()

	if tape.IsRecording() {
		t.Error("tape should not be recording initially")
	}
	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("tape should be recording after StartRecording()")
	}
	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("tape should not be recording after StopRecording()")
	}
}

func TestTape_RecordsOnlyWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)

	backend.Add(a.Raw(), b.Raw())
	if tape.NumOps() != 0 {
		t.Errorf("tape recorded %d ops while off, want 0", tape.NumOps())
	}

	tape.StartRecording()
	backend.Add(a.Raw(), b.Raw())
	if tape.NumOps() != 1 {
		t.Errorf("tape recorded %d ops, want 1", tape.NumOps())
	}
}

func TestTape_ClearPreservesRecordingState(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.StartRecording()
	a, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	backend.AddScalar(a.Raw(), 1)

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("tape has %d ops after Clear(), want 0", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Clear() should preserve the recording state")
	}
}

// A tensor feeding two operations must receive the sum of both gradient
// contributions. x*x has gradient 2x through accumulation.
func TestBackward_AccumulatesReusedInput(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{3, -2}, tensor.Shape{2}, backend)
	y := x.Mul(x)

	grads := autodiff.Backward(y, backend)
	g := grads[x.Raw()]
	if g == nil {
		t.Fatal("no gradient for x")
	}
	want := []float32{6, -4}
	for i := range want {
		if g.Data()[i] != want[i] {
			t.Errorf("grad[%d] = %f, want %f", i, g.Data()[i], want[i])
		}
	}
}

func TestBackward_MatMulShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	b, _ := tensor.FromSlice([]float32{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, backend)
	y := a.MatMul(b)

	grads := autodiff.Backward(y, backend)
	if ga := grads[a.Raw()]; ga == nil || !ga.Shape().Equal(a.Shape()) {
		t.Errorf("gradient for a missing or wrong shape")
	}
	if gb := grads[b.Raw()]; gb == nil || !gb.Shape().Equal(b.Shape()) {
		t.Errorf("gradient for b missing or wrong shape")
	}
}

// A broadcast bias must collect gradient contributions from every row it was
// broadcast over.
func TestBackward_BroadcastBias(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	bias, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{1, 3}, backend)
	y := x.Add(bias)

	grads := autodiff.Backward(y, backend)
	g := grads[bias.Raw()]
	if g == nil {
		t.Fatal("no gradient for bias")
	}
	if !g.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("bias grad shape = %v, want [1 3]", g.Shape())
	}
	// Output grad is all ones over 2 rows, so each bias element collects 2.
	for i, v := range g.Data() {
		if v != 2 {
			t.Errorf("bias grad[%d] = %f, want 2", i, v)
		}
	}
}

// Chunk outputs feed back into one input gradient via concatenation, even
// when only one chunk is used downstream.
func TestBackward_ChunkPartialUse(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}, backend)
	halves := x.Chunk(2, 1)
	y := halves[0].MulScalar(5)

	grads := autodiff.Backward(y, backend)
	g := grads[x.Raw()]
	if g == nil {
		t.Fatal("no gradient for x")
	}
	want := []float32{5, 5, 0, 0}
	for i := range want {
		if g.Data()[i] != want[i] {
			t.Errorf("grad[%d] = %f, want %f", i, g.Data()[i], want[i])
		}
	}
}

func TestBackward_MeanSpreadsGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
	loss := x.Mean()

	grads := autodiff.Backward(loss, backend)
	g := grads[x.Raw()]
	if g == nil {
		t.Fatal("no gradient for x")
	}
	for i, v := range g.Data() {
		if v != 0.25 {
			t.Errorf("grad[%d] = %f, want 0.25", i, v)
		}
	}
}

func TestBackward_EmptyTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)

	grads := autodiff.Backward(x, backend)
	if len(grads) != 0 {
		t.Errorf("Backward on an empty tape returned %d gradients, want 0", len(grads))
	}
}
