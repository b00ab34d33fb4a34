package viz_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/viz"
)

func TestGridShape(t *testing.T) {
	tests := []struct {
		n, rows, cols int
	}{
		{36, 6, 6},
		{16, 4, 4},
		{12, 3, 4},
		{10, 2, 5},
		{7, 1, 7},
		{1, 1, 1},
	}
	for _, tt := range tests {
		rows, cols := viz.GridShape(tt.n)
		assert.Equal(t, tt.rows, rows, "GridShape(%d) rows", tt.n)
		assert.Equal(t, tt.cols, cols, "GridShape(%d) cols", tt.n)
	}
}

func TestPanel_Dimensions(t *testing.T) {
	r := viz.NewRenderer(2, 2, 4, 3)

	input := []float32{0, 0.5, 1, 0.25}
	code := []float32{-1, 0, 1, 2}
	recon := []float32{0.1, 0.2, 0.3, 0.4}

	panel := r.Panel(input, code, recon)

	// Two 6x6 image tiles, one 6x6 code tile (2x2 grid scaled to height 6)
	// and two 4px gaps.
	assert.Equal(t, 6+6+6+2*4, panel.Bounds().Dx())
	assert.Equal(t, 6, panel.Bounds().Dy())
}

func TestPanel_ClampsOutOfRangeValues(t *testing.T) {
	r := viz.NewRenderer(1, 2, 2, 1)

	// Out-of-range inputs must not wrap around.
	panel := r.Panel([]float32{-5, 9}, []float32{0, 0}, []float32{0.5, 0.5})

	dark := panel.NRGBAAt(0, 0)
	bright := panel.NRGBAAt(1, 0)
	assert.Equal(t, uint8(0), dark.R)
	assert.Equal(t, uint8(255), bright.R)
}

func TestSave(t *testing.T) {
	r := viz.NewRenderer(2, 2, 4, 2)
	panel := r.Panel(
		[]float32{0, 0.5, 1, 0.25},
		[]float32{-1, 0, 1, 2},
		[]float32{0.1, 0.2, 0.3, 0.4},
	)

	path := filepath.Join(t.TempDir(), "panel.png")
	require.NoError(t, r.Save(panel, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
