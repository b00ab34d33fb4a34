package mnist

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Dataset holds one MNIST split with pixels normalized to [0, 1].
type Dataset struct {
	Images [][]float32 // [numSamples, Rows*Cols]
	Labels []byte      // [numSamples], digits 0-9
	Rows   int
	Cols   int
}

// File names of the official MNIST splits. Load accepts either the plain
// file or a .gz compressed copy, which is how the mirrors serve them.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Load reads one split from dataDir. With train true it loads the 60,000
// sample training set, otherwise the 10,000 sample test set.
func Load(dataDir string, train bool) (*Dataset, error) {
	imageFile, labelFile := TestImagesFile, TestLabelsFile
	if train {
		imageFile, labelFile = TrainImagesFile, TrainLabelsFile
	}

	var (
		ds  Dataset
		raw [][]byte
	)
	err := withFile(filepath.Join(dataDir, imageFile), func(r io.Reader) error {
		var err error
		raw, ds.Rows, ds.Cols, err = ReadImages(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	err = withFile(filepath.Join(dataDir, labelFile), func(r io.Reader) error {
		var err error
		ds.Labels, err = ReadLabels(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(raw) != len(ds.Labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(raw), len(ds.Labels))
	}

	ds.Images = make([][]float32, len(raw))
	for i, pixels := range raw {
		ds.Images[i] = normalize(pixels)
	}
	return &ds, nil
}

// normalize converts 0-255 pixel bytes to the [0, 1] float range.
func normalize(pixels []byte) []float32 {
	out := make([]float32, len(pixels))
	for i, p := range pixels {
		out[i] = float32(p) / 255.0
	}
	return out
}

// withFile opens path, or path+".gz" with transparent decompression when the
// plain file does not exist, and passes the reader to fn.
func withFile(path string, fn func(io.Reader) error) error {
	if _, err := os.Stat(path); os.IsNotExist(err) && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return fn(r)
}

// NumSamples returns the number of images in the split.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// ImageDim returns the flattened width of one image.
func (d *Dataset) ImageDim() int {
	return d.Rows * d.Cols
}

// Matrix packs the whole split into one [numSamples, Rows*Cols] tensor.
func Matrix[B tensor.Backend](d *Dataset, backend B) (*tensor.Tensor[B], error) {
	dim := d.ImageDim()
	data := make([]float32, d.NumSamples()*dim)
	for i, img := range d.Images {
		copy(data[i*dim:(i+1)*dim], img)
	}
	return tensor.FromSlice(data, tensor.Shape{d.NumSamples(), dim}, backend)
}
