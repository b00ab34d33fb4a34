package vae

import (
	"fmt"
	"io"
	"time"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/optim"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Trainable is anything that turns a batch into a scalar loss. Model
// satisfies it; tests substitute scripted losses.
type Trainable[B tensor.Backend] interface {
	Loss(input *tensor.Tensor[B]) *tensor.Tensor[B]
}

// Config controls the training loop.
type Config struct {
	Epochs    int
	BatchSize int
}

// EpochStats summarizes one completed epoch. Losses are measured over the
// full training and validation sets after the epoch's updates.
type EpochStats struct {
	Epoch     int
	TrainLoss float32
	ValLoss   float32
	Duration  time.Duration
}

// Reporter receives progress callbacks during training.
type Reporter interface {
	EpochDone(stats EpochStats)
}

// Result describes a finished training run.
type Result struct {
	EpochsRun    int
	StoppedEarly bool
	TrainLoss    float32
	ValLoss      float32
}

// Early stopping engages once enough epochs have passed for the loss curves
// to be meaningful, and triggers when the validation loss exceeds the
// training loss by more than trainLoss/32.
const (
	earlyStopMinEpochs = 15
	earlyStopDivisor   = 32
)

// Trainer runs mini-batch gradient descent over a Trainable. It owns the
// tape lifecycle: recording is on only while a batch loss is being built.
type Trainer[B tensor.Backend] struct {
	model    Trainable[*autodiff.Backend[B]]
	opt      optim.Optimizer
	backend  *autodiff.Backend[B]
	config   Config
	reporter Reporter
}

// NewTrainer wires a model, optimizer and backend into a training loop. A
// nil reporter disables progress output.
func NewTrainer[B tensor.Backend](model Trainable[*autodiff.Backend[B]], opt optim.Optimizer, backend *autodiff.Backend[B], config Config, reporter Reporter) *Trainer[B] {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Trainer[B]{
		model:    model,
		opt:      opt,
		backend:  backend,
		config:   config,
		reporter: reporter,
	}
}

// Fit trains on train, validating against val after every epoch. Both are
// [samples, features] matrices. A trailing partial batch is dropped.
//
// After epoch 15, training stops early when the validation loss pulls ahead
// of the training loss by more than 1/32 of its value, which indicates the
// model has started to memorize the training set.
func (t *Trainer[B]) Fit(train, val *tensor.Tensor[*autodiff.Backend[B]]) Result {
	numBatches := train.Shape()[0] / t.config.BatchSize
	tape := t.backend.Tape()

	var result Result
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		start := time.Now()
		for b := 0; b < numBatches; b++ {
			batch := rows(train, b*t.config.BatchSize, t.config.BatchSize)

			tape.Clear()
			tape.StartRecording()
			loss := t.model.Loss(batch)
			tape.StopRecording()

			grads := autodiff.Backward(loss, t.backend)
			t.opt.Step(grads)
		}
		tape.Clear()

		trainLoss := t.Evaluate(train)
		valLoss := t.Evaluate(val)
		result = Result{EpochsRun: epoch, TrainLoss: trainLoss, ValLoss: valLoss}

		t.reporter.EpochDone(EpochStats{
			Epoch:     epoch,
			TrainLoss: trainLoss,
			ValLoss:   valLoss,
			Duration:  time.Since(start),
		})

		if epoch > earlyStopMinEpochs && valLoss-trainLoss > trainLoss/earlyStopDivisor {
			result.StoppedEarly = true
			break
		}
	}
	return result
}

// Evaluate computes the mean loss over a [samples, features] matrix without
// recording gradients. The data is processed in batch-sized chunks to bound
// peak memory; chunk losses are averaged weighted by row count.
func (t *Trainer[B]) Evaluate(data *tensor.Tensor[*autodiff.Backend[B]]) float32 {
	numRows := data.Shape()[0]
	chunkRows := t.config.BatchSize
	if chunkRows <= 0 || chunkRows > numRows {
		chunkRows = numRows
	}

	var total float64
	for start := 0; start < numRows; start += chunkRows {
		n := chunkRows
		if start+n > numRows {
			n = numRows - start
		}
		loss := t.model.Loss(rows(data, start, n))
		total += float64(loss.Item()) * float64(n)
	}
	return float32(total / float64(numRows))
}

// rows returns a [count, features] copy of consecutive rows starting at row
// start.
func rows[B tensor.Backend](data *tensor.Tensor[B], start, count int) *tensor.Tensor[B] {
	features := data.Shape()[1]
	slice := data.Data()[start*features : (start+count)*features]
	batch, err := tensor.FromSlice(slice, tensor.Shape{count, features}, data.Backend())
	if err != nil {
		panic(err)
	}
	return batch
}

// ConsoleReporter writes one line per epoch to w.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// EpochDone prints the epoch's losses and wall time.
func (r *ConsoleReporter) EpochDone(stats EpochStats) {
	fmt.Fprintf(r.w, "epoch %3d  train loss %.6f  val loss %.6f  (%s)\n",
		stats.Epoch, stats.TrainLoss, stats.ValLoss, stats.Duration.Round(time.Millisecond))
}

type nopReporter struct{}

func (nopReporter) EpochDone(EpochStats) {}
