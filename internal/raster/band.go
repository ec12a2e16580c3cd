package raster

import "math"

// Band is a single-band raster held in memory: a row-major grid of float64
// samples plus the descriptor of the grid they live on. NaN is the no-data
// sentinel everywhere in the pipeline; loaders translate source no-data
// values to NaN so downstream arithmetic never has to special-case them.
type Band struct {
	Data [][]float64
	Desc Descriptor
}

// NewGrid allocates a height x width grid initialized to NaN.
func NewGrid(height, width int) [][]float64 {
	grid := make([][]float64, height)
	for i := range grid {
		grid[i] = make([]float64, width)
		for j := range grid[i] {
			grid[i][j] = math.NaN()
		}
	}
	return grid
}

// gridFromBuffer reshapes a flat row-major buffer into a [][]float64 without
// copying row contents.
func gridFromBuffer(buf []float64, height, width int) [][]float64 {
	grid := make([][]float64, height)
	for i := range grid {
		grid[i] = buf[i*width : (i+1)*width]
	}
	return grid
}

// flatten returns the grid as a single row-major buffer.
func flatten(grid [][]float64) []float64 {
	if len(grid) == 0 {
		return nil
	}
	width := len(grid[0])
	buf := make([]float64, 0, len(grid)*width)
	for _, row := range grid {
		buf = append(buf, row...)
	}
	return buf
}

// BoolsToGrid converts a boolean mask to a {0,1} float grid so it can be
// written through the same raster writer as every other product.
func BoolsToGrid(mask [][]bool) [][]float64 {
	grid := make([][]float64, len(mask))
	for i, row := range mask {
		grid[i] = make([]float64, len(row))
		for j, set := range row {
			if set {
				grid[i][j] = 1.0
			}
		}
	}
	return grid
}
