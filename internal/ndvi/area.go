package ndvi

import (
	"math"

	"github.com/forest-sentry/deforestation-cli/internal/raster"
)

// Summary is the hectare accounting for one change-detection run.
type Summary struct {
	PixelAreaM2   float64 `csv:"pixel_area_m2"`
	HaPerPixel    float64 `csv:"ha_per_pixel"`
	ValidPixels   int     `csv:"valid_pixels"`
	FlaggedPixels int     `csv:"flagged_pixels"`
	ValidHa       float64 `csv:"valid_ha"`
	FlaggedHa     float64 `csv:"flagged_ha"`
	FlaggedPct    float64 `csv:"flagged_pct"`
}

// AccountArea converts the change and validity masks into physical area
// using the pixel spacing of the target grid. When no pixel is valid the
// percentage is NaN rather than an error.
func AccountArea(change *Change, desc raster.Descriptor) Summary {
	xRes, yRes := desc.PixelSize()
	pixelAreaM2 := xRes * yRes
	haPerPixel := pixelAreaM2 / 10000

	validPixels := countSet(change.Valid)
	flaggedPixels := countSet(change.Mask)

	validHa := float64(validPixels) * haPerPixel
	flaggedHa := float64(flaggedPixels) * haPerPixel

	pct := math.NaN()
	if validHa > 0 {
		pct = flaggedHa / validHa * 100
	}

	return Summary{
		PixelAreaM2:   pixelAreaM2,
		HaPerPixel:    haPerPixel,
		ValidPixels:   validPixels,
		FlaggedPixels: flaggedPixels,
		ValidHa:       validHa,
		FlaggedHa:     flaggedHa,
		FlaggedPct:    pct,
	}
}

func countSet(mask [][]bool) int {
	count := 0
	for _, row := range mask {
		for _, set := range row {
			if set {
				count++
			}
		}
	}
	return count
}
