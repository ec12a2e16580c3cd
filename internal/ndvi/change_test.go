package ndvi

import (
	"math"
	"testing"

	"github.com/forest-sentry/deforestation-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexBand(data [][]float64) *raster.Band {
	return &raster.Band{
		Data: data,
		Desc: raster.Descriptor{
			Width:      len(data[0]),
			Height:     len(data),
			Transform:  [6]float64{0, 10, 0, 100, 0, -10},
			Projection: "PROJCS[\"test\"]",
		},
	}
}

func TestDetectNoChange(t *testing.T) {
	// Identical dates: zero difference everywhere, nothing flagged.
	earlier := indexBand([][]float64{{0.5, 0.5}, {0.5, 0.5}})
	later := indexBand([][]float64{{0.5, 0.5}, {0.5, 0.5}})

	change, err := Detect(earlier, later, -0.2)
	require.NoError(t, err)
	for i := range change.Mask {
		for j := range change.Mask[i] {
			assert.Equal(t, 0.0, change.Diff.Data[i][j])
			assert.True(t, change.Valid[i][j])
			assert.False(t, change.Mask[i][j])
		}
	}
}

func TestDetectFlagsDropBelowThreshold(t *testing.T) {
	earlier := indexBand([][]float64{{0.5}})
	later := indexBand([][]float64{{0.1}})

	change, err := Detect(earlier, later, -0.2)
	require.NoError(t, err)
	assert.InDelta(t, -0.4, change.Diff.Data[0][0], 1e-12)
	assert.True(t, change.Mask[0][0])
}

func TestDetectIgnoresDropAboveThreshold(t *testing.T) {
	earlier := indexBand([][]float64{{0.5}})
	later := indexBand([][]float64{{0.35}})

	change, err := Detect(earlier, later, -0.2)
	require.NoError(t, err)
	assert.InDelta(t, -0.15, change.Diff.Data[0][0], 1e-12)
	assert.True(t, change.Valid[0][0])
	assert.False(t, change.Mask[0][0])
}

func TestDetectThresholdBoundaryIsStrict(t *testing.T) {
	// diff == threshold exactly: not flagged.
	earlier := indexBand([][]float64{{0.5}})
	later := indexBand([][]float64{{0.3}})
	change, err := Detect(earlier, later, -0.2)
	require.NoError(t, err)
	assert.False(t, change.Mask[0][0])

	// One ulp below the threshold: flagged.
	threshold := -0.2
	change, err = Detect(indexBand([][]float64{{0}}), indexBand([][]float64{{math.Nextafter(threshold, -1)}}), threshold)
	require.NoError(t, err)
	assert.True(t, change.Mask[0][0])
}

func TestDetectMaskIsSubsetOfValid(t *testing.T) {
	earlier := indexBand([][]float64{{0.9, math.NaN()}, {0.9, 0.9}})
	later := indexBand([][]float64{{0.1, 0.1}, {math.NaN(), 0.1}})

	change, err := Detect(earlier, later, -0.2)
	require.NoError(t, err)
	for i := range change.Mask {
		for j := range change.Mask[i] {
			if change.Mask[i][j] {
				assert.True(t, change.Valid[i][j], "flagged pixel without both dates defined")
			}
		}
	}
	assert.False(t, change.Valid[0][1])
	assert.False(t, change.Valid[1][0])
	assert.True(t, change.Mask[0][0])
	assert.True(t, change.Mask[1][1])
}

func TestDetectRejectsMismatchedGrids(t *testing.T) {
	earlier := indexBand([][]float64{{0.5}})
	later := indexBand([][]float64{{0.5, 0.5}, {0.5, 0.5}})

	_, err := Detect(earlier, later, -0.2)
	assert.Error(t, err)
}
