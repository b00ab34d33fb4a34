// Command lumen trains a variational auto-encoder on MNIST and renders a
// few test digits next to their latent codes and reconstructions.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/backend/cpu"
	"github.com/lumen-ml/lumen/internal/mnist"
	"github.com/lumen-ml/lumen/internal/optim"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/vae"
	"github.com/lumen-ml/lumen/internal/viz"
)

func main() {
	dataDir := flag.String("data", "data/mnist", "Directory for MNIST data files (downloaded if missing)")
	outDir := flag.String("out", "out", "Directory for rendered sample images")
	mirror := flag.String("mirror", "", "MNIST download mirror URL (default: the cvdf-datasets mirror)")
	epochs := flag.Int("epochs", 32, "Maximum number of training epochs")
	batchSize := flag.Int("batch", 1024, "Batch size for training")
	lr := flag.Float64("lr", 0.001, "Learning rate for Adam optimizer")
	codeDim := flag.Int("code", 36, "Width of the latent code")
	numSamples := flag.Int("samples", 5, "Number of test digits to render after training")
	seed := flag.Int64("seed", 42, "Random seed for weights and sampling")
	flag.Parse()

	fmt.Println("Lumen - MLP Variational Auto-Encoder on MNIST")

	if err := mnist.Download(*dataDir, *mirror); err != nil {
		log.Fatalf("Failed to download MNIST: %v", err)
	}

	fmt.Printf("\nLoading MNIST data from %s\n", *dataDir)
	trainSet, err := mnist.Load(*dataDir, true)
	if err != nil {
		log.Fatalf("Failed to load training set: %v", err)
	}
	testSet, err := mnist.Load(*dataDir, false)
	if err != nil {
		log.Fatalf("Failed to load test set: %v", err)
	}
	fmt.Printf("  train: %s samples, val: %s samples, %dx%d pixels\n",
		humanize.Comma(int64(trainSet.NumSamples())),
		humanize.Comma(int64(testSet.NumSamples())),
		trainSet.Rows, trainSet.Cols)

	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(*seed))
	model := vae.New(trainSet.ImageDim(), *codeDim, rng, backend)

	fmt.Printf("\nModel: %d -> %d code, %d parameters\n",
		model.InputDim(), model.CodeDim(), countParameters(model))
	fmt.Printf("Training: Adam lr=%.4f, batch %d, up to %d epochs\n\n", *lr, *batchSize, *epochs)

	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: float32(*lr)})
	trainer := vae.NewTrainer(model, optimizer, backend,
		vae.Config{Epochs: *epochs, BatchSize: *batchSize},
		vae.NewConsoleReporter(os.Stdout))

	trainMat, err := mnist.Matrix(trainSet, backend)
	if err != nil {
		log.Fatalf("Failed to build training matrix: %v", err)
	}
	valMat, err := mnist.Matrix(testSet, backend)
	if err != nil {
		log.Fatalf("Failed to build validation matrix: %v", err)
	}

	result := trainer.Fit(trainMat, valMat)
	if result.StoppedEarly {
		fmt.Printf("\nStopped early after %d epochs (validation loss diverging)\n", result.EpochsRun)
	} else {
		fmt.Printf("\nFinished %d epochs\n", result.EpochsRun)
	}
	fmt.Printf("Final train loss %.6f, val loss %.6f\n", result.TrainLoss, result.ValLoss)

	if err := renderSamples(model, backend, testSet, rng, *numSamples, *outDir); err != nil {
		log.Fatalf("Failed to render samples: %v", err)
	}
	fmt.Printf("Wrote %d sample images to %s\n", *numSamples, *outDir)
}

// renderSamples encodes and reconstructs random test digits and writes one
// panel image per digit.
func renderSamples(model *vae.Model[*autodiff.Backend[*cpu.Backend]], backend *autodiff.Backend[*cpu.Backend], testSet *mnist.Dataset, rng *rand.Rand, count int, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	renderer := viz.NewRenderer(testSet.Rows, testSet.Cols, model.CodeDim(), 4)

	backend.Tape().Clear()
	for i := 0; i < count; i++ {
		idx := rng.Intn(testSet.NumSamples())
		input, err := tensor.FromSlice(testSet.Images[idx],
			tensor.Shape{1, testSet.ImageDim()}, backend)
		if err != nil {
			return err
		}

		mean, stddev := model.Encode(input)
		code := model.SampleEncoding(mean, stddev)
		reconstruction := model.Decode(code)

		panel := renderer.Panel(input.Data(), code.Data(), reconstruction.Data())
		name := filepath.Join(outDir, fmt.Sprintf("digit_%d_sample_%d.png", testSet.Labels[idx], i))
		if err := renderer.Save(panel, name); err != nil {
			return err
		}
	}
	return nil
}

func countParameters(model *vae.Model[*autodiff.Backend[*cpu.Backend]]) int {
	total := 0
	for _, p := range model.Parameters() {
		total += p.Tensor().NumElements()
	}
	return total
}
