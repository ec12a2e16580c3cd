package ndvi

import (
	"math"
	"testing"

	"github.com/forest-sentry/deforestation-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountArea(t *testing.T) {
	desc := raster.Descriptor{
		Width:     2,
		Height:    2,
		Transform: [6]float64{0, 10, 0, 100, 0, -10},
	}
	change := &Change{
		Valid: [][]bool{{true, true}, {true, false}},
		Mask:  [][]bool{{true, false}, {false, false}},
	}

	summary := AccountArea(change, desc)
	assert.Equal(t, 100.0, summary.PixelAreaM2)
	assert.Equal(t, 0.01, summary.HaPerPixel)
	assert.Equal(t, 3, summary.ValidPixels)
	assert.Equal(t, 1, summary.FlaggedPixels)
	assert.InDelta(t, 0.03, summary.ValidHa, 1e-12)
	assert.InDelta(t, 0.01, summary.FlaggedHa, 1e-12)
	assert.InDelta(t, 100.0/3, summary.FlaggedPct, 1e-9)
}

func TestAccountAreaUsesAbsolutePixelSize(t *testing.T) {
	// The y scale is negative in north-up rasters; area must not be.
	desc := raster.Descriptor{
		Width:     1,
		Height:    1,
		Transform: [6]float64{0, 20, 0, 100, 0, -30},
	}
	change := &Change{Valid: [][]bool{{true}}, Mask: [][]bool{{true}}}

	summary := AccountArea(change, desc)
	assert.Equal(t, 600.0, summary.PixelAreaM2)
	assert.Greater(t, summary.FlaggedHa, 0.0)
}

func TestAccountAreaNoValidPixels(t *testing.T) {
	desc := raster.Descriptor{
		Width:     1,
		Height:    1,
		Transform: [6]float64{0, 10, 0, 100, 0, -10},
	}
	change := &Change{Valid: [][]bool{{false}}, Mask: [][]bool{{false}}}

	summary := AccountArea(change, desc)
	assert.Equal(t, 0.0, summary.ValidHa)
	assert.Equal(t, 0.0, summary.FlaggedHa)
	assert.True(t, math.IsNaN(summary.FlaggedPct), "empty valid area is NaN, not an error")
}

func TestAccountAreaFlaggedNeverExceedsValid(t *testing.T) {
	desc := raster.Descriptor{
		Width:     3,
		Height:    1,
		Transform: [6]float64{0, 10, 0, 100, 0, -10},
	}
	cases := []struct {
		valid, mask [][]bool
	}{
		{[][]bool{{true, true, true}}, [][]bool{{true, true, true}}},
		{[][]bool{{true, false, true}}, [][]bool{{true, false, false}}},
		{[][]bool{{false, false, false}}, [][]bool{{false, false, false}}},
	}
	for _, tc := range cases {
		summary := AccountArea(&Change{Valid: tc.valid, Mask: tc.mask}, desc)
		require.LessOrEqual(t, summary.FlaggedHa, summary.ValidHa)
		if summary.ValidHa > 0 {
			assert.GreaterOrEqual(t, summary.FlaggedPct, 0.0)
			assert.LessOrEqual(t, summary.FlaggedPct, 100.0)
		}
	}
}
