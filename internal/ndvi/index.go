package ndvi

import "math"

// Calculate computes the normalized difference vegetation index
// (nir-red)/(nir+red) elementwise over two same-grid bands. Pixels where the
// denominator is zero come back as NaN, NaN inputs propagate, and results are
// clipped to [-1, 1] to defend against reflectance values outside the
// physical range.
func Calculate(nir, red [][]float64) [][]float64 {
	rows := len(nir)
	result := make([][]float64, rows)
	for i := range result {
		cols := len(nir[i])
		result[i] = make([]float64, cols)
		for j := range result[i] {
			denominator := nir[i][j] + red[i][j]
			if denominator == 0 {
				result[i][j] = math.NaN()
				continue
			}
			value := (nir[i][j] - red[i][j]) / denominator
			if value > 1 {
				value = 1
			} else if value < -1 {
				value = -1
			}
			result[i][j] = value
		}
	}
	return result
}
