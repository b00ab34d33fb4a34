// Package viz renders auto-encoder inputs, codes and reconstructions as
// image files for eyeballing training results.
package viz

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Renderer draws side-by-side panels of input image, latent code and
// reconstruction. The code vector is displayed as a small grayscale grid
// whose shape is the most square factorization of the code dimension, so a
// 36-wide code becomes a 6x6 tile.
type Renderer struct {
	rows  int
	cols  int
	scale int

	codeRows int
	codeCols int
}

const tileGap = 4

// NewRenderer creates a renderer for rows x cols images with codeDim-wide
// codes. Each image pixel is drawn as a scale x scale block.
func NewRenderer(rows, cols, codeDim, scale int) *Renderer {
	if scale < 1 {
		scale = 1
	}
	codeRows, codeCols := GridShape(codeDim)
	return &Renderer{
		rows:     rows,
		cols:     cols,
		scale:    scale,
		codeRows: codeRows,
		codeCols: codeCols,
	}
}

// GridShape returns the most square rows x cols factorization of n, with
// rows <= cols. A prime n degenerates to 1 x n.
func GridShape(n int) (rows, cols int) {
	rows = int(math.Sqrt(float64(n)))
	for n%rows != 0 {
		rows--
	}
	return rows, n / rows
}

// Panel composes input, code and reconstruction into one image, left to
// right. Input and reconstruction values are expected in [0, 1]; the code is
// unbounded and is squashed through a sigmoid before drawing.
func (r *Renderer) Panel(input, code, reconstruction []float32) *image.NRGBA {
	inputTile := r.upscale(grayImage(input, r.rows, r.cols), r.scale)
	reconTile := r.upscale(grayImage(reconstruction, r.rows, r.cols), r.scale)

	// Scale the code tile so its height matches the image tiles.
	codeScale := r.rows * r.scale / r.codeRows
	if codeScale < 1 {
		codeScale = 1
	}
	codeTile := r.upscale(grayImage(squash(code), r.codeRows, r.codeCols), codeScale)

	width := inputTile.Bounds().Dx() + codeTile.Bounds().Dx() + reconTile.Bounds().Dx() + 2*tileGap
	height := inputTile.Bounds().Dy()
	if codeTile.Bounds().Dy() > height {
		height = codeTile.Bounds().Dy()
	}

	panel := imaging.New(width, height, color.NRGBA{R: 32, G: 32, B: 32, A: 255})
	x := 0
	panel = imaging.Paste(panel, inputTile, image.Pt(x, 0))
	x += inputTile.Bounds().Dx() + tileGap
	panel = imaging.Paste(panel, codeTile, image.Pt(x, 0))
	x += codeTile.Bounds().Dx() + tileGap
	panel = imaging.Paste(panel, reconTile, image.Pt(x, 0))
	return panel
}

// Save writes img to path; the format follows the file extension.
func (r *Renderer) Save(img image.Image, path string) error {
	return imaging.Save(img, path)
}

func (r *Renderer) upscale(img image.Image, scale int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// grayImage maps [0, 1] values to an 8-bit grayscale image, clamping out of
// range values.
func grayImage(values []float32, rows, cols int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := values[y*cols+x]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

func squash(values []float32) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(1.0 / (1.0 + math.Exp(-float64(v))))
	}
	return out
}
