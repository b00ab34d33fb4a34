package mnist

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

// DefaultMirror serves the official MNIST files gzip-compressed.
const DefaultMirror = "https://storage.googleapis.com/cvdf-datasets/mnist/"

var allFiles = []string{
	TrainImagesFile,
	TrainLabelsFile,
	TestImagesFile,
	TestLabelsFile,
}

// Download fetches any missing MNIST files from mirror into dataDir, keeping
// them compressed on disk. Files already present (plain or .gz) are skipped.
// An empty mirror selects DefaultMirror.
func Download(dataDir, mirror string) error {
	if mirror == "" {
		mirror = DefaultMirror
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", dataDir)
	}

	for _, name := range allFiles {
		if fileExists(filepath.Join(dataDir, name)) || fileExists(filepath.Join(dataDir, name+".gz")) {
			continue
		}
		if err := downloadFile(mirror+name+".gz", filepath.Join(dataDir, name+".gz")); err != nil {
			return errors.Wrapf(err, "failed to download %s", name)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// downloadFile streams url to path via a temporary file, so an interrupted
// download never leaves a truncated file behind.
func downloadFile(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(path))
	written, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	if err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	fmt.Printf("downloaded %s (%s)\n", filepath.Base(path), humanize.Bytes(uint64(written)))
	return nil
}
