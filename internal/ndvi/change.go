package ndvi

import (
	"fmt"
	"math"

	"github.com/forest-sentry/deforestation-cli/internal/raster"
)

// Change holds the products of differencing two dated index rasters: the
// signed difference grid, the validity mask (both dates defined) and the
// change mask (valid and below threshold). The change mask is always a
// subset of the validity mask.
type Change struct {
	Diff  *raster.Band
	Valid [][]bool
	Mask  [][]bool
}

// Detect differences two index rasters (later minus earlier) and flags every
// valid pixel whose drop is strictly below threshold. Both rasters must live
// on the same grid; callers align them first.
func Detect(earlier, later *raster.Band, threshold float64) (*Change, error) {
	if !earlier.Desc.Equal(later.Desc) {
		return nil, fmt.Errorf("index rasters are on different grids: %dx%d vs %dx%d",
			earlier.Desc.Width, earlier.Desc.Height, later.Desc.Width, later.Desc.Height)
	}

	height, width := later.Desc.Height, later.Desc.Width
	diff := make([][]float64, height)
	valid := make([][]bool, height)
	mask := make([][]bool, height)

	for i := 0; i < height; i++ {
		diff[i] = make([]float64, width)
		valid[i] = make([]bool, width)
		mask[i] = make([]bool, width)
		for j := 0; j < width; j++ {
			before := earlier.Data[i][j]
			after := later.Data[i][j]
			diff[i][j] = after - before
			if math.IsNaN(before) || math.IsNaN(after) {
				continue
			}
			valid[i][j] = true
			// Strict comparison: a pixel exactly at the threshold is
			// not flagged.
			if diff[i][j] < threshold {
				mask[i][j] = true
			}
		}
	}

	return &Change{
		Diff:  &raster.Band{Data: diff, Desc: later.Desc},
		Valid: valid,
		Mask:  mask,
	}, nil
}
