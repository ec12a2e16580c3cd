package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/fogleman/gg"
	"github.com/forest-sentry/deforestation-cli/internal/ndvi"
	"github.com/forest-sentry/deforestation-cli/internal/properties"
	"github.com/gammazero/workerpool"
)

// Quicklook renders the change mask over a grayscale view of the later
// date's index raster and saves it as a PNG. The pixel with the deepest
// index drop gets a circle marker so the worst-hit spot is easy to find.
func Quicklook(index *ndvi.Change, background [][]float64, outputPath string) error {
	height := index.Diff.Desc.Height
	width := index.Diff.Desc.Width
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	loss := properties.ColorMap["loss"]

	// Rows touch disjoint pixels, so they can be filled concurrently.
	wp := workerpool.New(runtime.NumCPU())
	for i := 0; i < height; i++ {
		row := i
		wp.Submit(func() {
			for j := 0; j < width; j++ {
				if index.Mask[row][j] {
					img.Set(j, row, color.RGBA{R: loss.R, G: loss.G, B: loss.B, A: 255})
					continue
				}
				value := background[row][j]
				if math.IsNaN(value) {
					img.Set(j, row, color.RGBA{A: 255})
					continue
				}
				// Index values live in [-1,1]; stretch to 8-bit gray.
				gray := uint8((value + 1) / 2 * 255)
				img.Set(j, row, color.RGBA{R: gray, G: gray, B: gray, A: 255})
			}
		})
	}
	wp.StopWait()

	dc := gg.NewContextForImage(img)
	if x, y, ok := deepestDrop(index); ok {
		marker := properties.ColorMap["marker"]
		dc.SetRGB(float64(marker.R)/255, float64(marker.G)/255, float64(marker.B)/255)
		dc.DrawCircle(float64(x), float64(y), 5)
		dc.Stroke()
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save quicklook: %v", err)
	}
	return nil
}

// deepestDrop finds the flagged pixel with the most negative difference.
func deepestDrop(index *ndvi.Change) (int, int, bool) {
	x, y := 0, 0
	found := false
	minDiff := math.Inf(1)
	for i, row := range index.Diff.Data {
		for j, value := range row {
			if index.Mask[i][j] && value < minDiff {
				minDiff = value
				x, y = j, i
				found = true
			}
		}
	}
	return x, y, found
}
